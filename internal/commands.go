package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/fansub/internal/dialog"
	"github.com/starford/fansub/internal/editor"
	"github.com/starford/fansub/internal/mcpserver"
	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/notegen"
	"github.com/starford/fansub/internal/noteservice"
)

// NewNote creates a translation note. With a nil input the form dialog is
// shown; otherwise the input is used as if it had been typed into it.
func (a *App) NewNote(ctx context.Context, in *noteservice.NoteInput) error {
	opener, err := a.configuredOpener()
	if err != nil {
		return err
	}

	if in != nil {
		note, err := a.service(opener).CreateNote(ctx, *in)
		if err != nil {
			return fmt.Errorf("new note: %w", err)
		}
		return a.reportCreated(note)
	}

	// The editor may need the terminal, so it is started only once the
	// dialog has released it.
	svc := a.service(editor.Nop{})
	list, err := svc.Folders(ctx)
	if err != nil {
		return fmt.Errorf("new note: %w", err)
	}

	var pending *notegen.Pending
	submit := func(d models.Draft) error {
		p, err := svc.Submit(ctx, d, list.Settings)
		pending = p
		return err
	}

	m, err := a.runDialog(ctx, dialog.New(list.Folders, list.Selected, submit))
	if err != nil {
		return err
	}
	if err := m.Err(); err != nil {
		return fmt.Errorf("new note: %w", err)
	}
	if !m.Submitted() {
		a.logger.Info("dialog dismissed")
		return nil
	}

	note, err := pending.Wait()
	if err != nil {
		a.logger.Error("note creation failed", slog.String("error", err.Error()))
		return fmt.Errorf("new note: %w", err)
	}
	if err := opener.Open(ctx, note); err != nil {
		a.logger.Warn("note open failed", slog.String("path", note.Path), slog.String("error", err.Error()))
		return fmt.Errorf("new note: open %s: %w", note.Path, err)
	}
	return a.reportCreated(note)
}

// runTerminalDialog shows the form on the configured streams.
func (a *App) runTerminalDialog(ctx context.Context, m dialog.Model) (dialog.Model, error) {
	return dialog.Run(ctx, m,
		tea.WithInput(a.stdin),
		tea.WithOutput(a.stderr),
	)
}

func (a *App) reportCreated(note models.Created) error {
	_, err := fmt.Fprintf(a.stdout, "created: %s\n", note.Path)
	return err
}

// Folders prints the destination folders, marking the initial selection.
func (a *App) Folders(ctx context.Context) error {
	list, err := a.service(editor.Nop{}).Folders(ctx)
	if err != nil {
		return err
	}
	for _, f := range list.Folders {
		mark := " "
		if f == list.Selected {
			mark = "*"
		}
		if _, err := fmt.Fprintf(a.stdout, "%s %s\n", mark, f); err != nil {
			return err
		}
	}
	return nil
}

// List prints the translation notes under dir as a table, or as JSON.
func (a *App) List(ctx context.Context, dir string, asJSON bool) error {
	entries, err := a.service(editor.Nop{}).Catalog(ctx, dir)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTITLE\tAUTHOR\tPAGES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.Path, e.Title, e.Author, e.Pages)
	}
	return tw.Flush()
}

// ServeMCP runs the MCP server on stdio until the client disconnects.
// Notes are not opened: stdout belongs to the protocol.
func (a *App) ServeMCP(_ context.Context) error {
	srv := mcpserver.New(a.service(editor.Nop{}), a.store.Root(), a.logger)
	return srv.ServeStdio()
}
