// Package editor opens freshly created notes for editing.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/starford/fansub/internal/models"
)

// Modes selectable from config.
const (
	ModeNone    = "none"
	ModeURI     = "uri"
	ModeCommand = "command"
)

// Nop ignores open requests.
type Nop struct{}

// Open does nothing.
func (Nop) Open(context.Context, models.Created) error { return nil }

// URIPrinter writes an obsidian:/// link for the note to Out.
type URIPrinter struct {
	Vault string
	Out   io.Writer
}

// Open prints the note URI on its own line.
func (p URIPrinter) Open(_ context.Context, note models.Created) error {
	_, err := fmt.Fprintln(p.Out, URI(p.Vault, note.Path))
	return err
}

// Command runs an external editor with the note's absolute path appended
// to Args.
type Command struct {
	Name   string
	Args   []string
	Vault  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand returns a Command for name, falling back to $VISUAL then
// $EDITOR when name is empty.
func NewCommand(name string, args []string, vault string) (*Command, error) {
	if name == "" {
		name = os.Getenv("VISUAL")
	}
	if name == "" {
		name = os.Getenv("EDITOR")
	}
	if name == "" {
		return nil, errors.New("editor: no command configured and $EDITOR is unset")
	}
	return &Command{
		Name:   name,
		Args:   args,
		Vault:  vault,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Open runs the editor and waits for it to exit.
func (c *Command) Open(ctx context.Context, note models.Created) error {
	target := filepath.Join(c.Vault, filepath.FromSlash(note.Path))
	args := append(append([]string{}, c.Args...), target)

	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: run %s: %w", c.Name, err)
	}
	return nil
}

// Publisher is satisfied by the SSE broker.
type Publisher interface {
	PublishNoteEvent(kind, path string)
}

// Broadcast announces the note to connected clients, which open it themselves.
type Broadcast struct {
	Pub Publisher
}

// Open publishes a note.open event.
func (b Broadcast) Open(_ context.Context, note models.Created) error {
	b.Pub.PublishNoteEvent("open", note.Path)
	return nil
}
