// Package dialog renders the "new note" form in the terminal.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/fansub/internal/apperr"
	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/notegen"
)

// State is the dialog lifecycle: Open until submitted or dismissed.
type State int

const (
	Open State = iota
	Closed
)

// SubmitFunc receives a validated draft. The dialog closes right after it
// returns, whatever the result.
type SubmitFunc func(models.Draft) error

// Focusable rows, top to bottom.
const (
	fieldTitle = iota
	fieldAuthor
	fieldPages
	fieldFolder
	fieldCreate
	fieldCount
)

const invalidPagesNotice = "Total Pages must be greater than 0"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(14)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model of the form.
type Model struct {
	inputs    [fieldFolder]textinput.Model
	folders   []string
	folderIdx int
	focus     int

	state     State
	notice    string
	submitted bool
	err       error
	submit    SubmitFunc
}

// New builds an open dialog offering folders, with selected preselected.
// An empty folder list offers the vault root only.
func New(folders []string, selected string, submit SubmitFunc) Model {
	if len(folders) == 0 {
		folders = []string{models.RootFolder}
	}
	m := Model{
		folders: folders,
		submit:  submit,
	}
	for i, f := range folders {
		if f == selected {
			m.folderIdx = i
			break
		}
	}

	placeholders := [fieldFolder]string{"Enter title", "Enter author", "Enter total pages"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldTitle].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == Closed {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.state = Closed
		return m, tea.Quit
	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	case "ctrl+s":
		return m.create()
	case "enter":
		if m.focus == fieldCreate {
			return m.create()
		}
		return m.setFocus(m.focus + 1)
	case "left":
		if m.focus == fieldFolder {
			m.cycleFolder(-1)
			return m, nil
		}
	case "right", " ":
		if m.focus == fieldFolder {
			m.cycleFolder(1)
			return m, nil
		}
	}
	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= fieldFolder {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m, cmd
}

func (m *Model) cycleFolder(delta int) {
	n := len(m.folders)
	m.folderIdx = (m.folderIdx + delta + n) % n
}

// create validates the form. A bad page count leaves the dialog open with
// a notice; otherwise the draft is submitted and the dialog closes.
func (m Model) create() (tea.Model, tea.Cmd) {
	draft, err := notegen.NewDraft(
		m.inputs[fieldTitle].Value(),
		m.inputs[fieldAuthor].Value(),
		m.inputs[fieldPages].Value(),
		m.Folder(),
	)
	if err != nil {
		m.notice = noticeFor(err)
		return m, nil
	}

	m.notice = ""
	m.submitted = true
	if m.submit != nil {
		m.err = m.submit(draft)
	}
	m.state = Closed
	return m, tea.Quit
}

func noticeFor(err error) string {
	if errors.Is(err, apperr.ErrInvalidPageCount) {
		return invalidPagesNotice
	}
	return err.Error()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.state == Closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Create new Fansub Note"))
	b.WriteString("\n")

	labels := [fieldFolder]string{"Title", "Author", "Total Pages"}
	for i, label := range labels {
		b.WriteString(m.label(i, label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(m.label(fieldFolder, "Choose folder"))
	folder := fmt.Sprintf("‹ %s ›", m.Folder())
	if m.focus == fieldFolder {
		folder = focusedStyle.Render(folder)
	}
	b.WriteString(folder)
	b.WriteString("\n\n")

	button := buttonStyle
	if m.focus == fieldCreate {
		button = button.BorderForeground(lipgloss.Color("205"))
	}
	b.WriteString(button.Render("Create"))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("tab: next • ←/→: folder • enter: create • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return labelStyle.Inherit(focusedStyle).Render(text)
	}
	return labelStyle.Render(text)
}

// State returns the dialog state.
func (m Model) State() State { return m.state }

// Folder returns the currently selected folder.
func (m Model) Folder() string { return m.folders[m.folderIdx] }

// Notice returns the message currently shown to the user, if any.
func (m Model) Notice() string { return m.notice }

// Submitted reports whether a valid draft was handed to the submit func.
func (m Model) Submitted() bool { return m.submitted }

// Err returns the error the submit func returned.
func (m Model) Err() error { return m.err }

// Run shows the dialog until it closes and returns the final model.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, fmt.Errorf("dialog: %w", err)
	}
	return final.(Model), nil
}
