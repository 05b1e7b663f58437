package bubble_adapter

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/typograf/galley/core"
)

type Theme struct {
	StatusLineStyle lipgloss.Style
	MessageStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	CursorStyle     lipgloss.Style
	SelectionStyle  lipgloss.Style
	DegradedStyle   lipgloss.Style
	RootStyle       lipgloss.Style
	GlyphStyle      lipgloss.Style
}

var DefaultTheme = Theme{
	StatusLineStyle: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	CursorStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	SelectionStyle:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
	DegradedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	RootStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
	GlyphStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
}

type Model struct {
	editor    editor.Editor
	viewport  viewport.Model
	width     int
	height    int
	theme     Theme
	err       error
	message   string
	isFocused bool
}

type messageMsg string

type errMsg error

type QuitMsg struct{}

type clearMsg struct{}

func (m *Model) dispatchClearMsg() tea.Cmd {
	return tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
		return clearMsg{}
	})
}

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

func New(width, height int, metrics editor.GlyphMetricsProvider) Model {
	ed := editor.New(metrics, &atottoClipboard{})
	vp := viewport.New(width, height-2)

	m := Model{
		editor:    ed,
		viewport:  vp,
		theme:     DefaultTheme,
		isFocused: true,
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// GetEditor returns the underlying editor instance.
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		if m.editor.GetState().Quit {
			return m, tea.Quit
		}

		if cmd, handled := m.handleKey(msg); handled {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			break
		}

		if intent := convertBubbleKey(msg); intent != nil {
			if err := m.editor.HandleIntent(intent); err != nil {
				cmds = append(cmds, func() tea.Msg {
					return errMsg(err)
				})
			}
		}

	case messageMsg:
		m.message = string(msg)
		m.err = nil
		cmds = append(cmds, m.dispatchClearMsg())

	case errMsg:
		m.message = ""
		m.err = msg
		cmds = append(cmds, m.dispatchClearMsg())

	case clearMsg:
		m.message = ""
		m.err = nil

	case QuitMsg:
		return m, tea.Quit
	}

	cmds = append(cmds, m.listenForEditorUpdate())

	var viewportCmd tea.Cmd
	m.viewport, viewportCmd = m.viewport.Update(msg)
	cmds = append(cmds, viewportCmd)

	m.viewport.SetContent(m.renderGalley())
	return m, tea.Batch(cmds...)
}

// handleKey deals with the session-level chords that do not map to editing
// intents.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlQ:
		m.editor.Quit()
		return tea.Quit, true

	case tea.KeyCtrlZ:
		m.editor.Undo()
		return nil, true

	case tea.KeyCtrlY:
		m.editor.Redo()
		return nil, true

	case tea.KeyCtrlB:
		m.editor.StartSelection()
		return nil, true

	case tea.KeyEscape:
		m.editor.ClearSelection()
		return nil, true

	case tea.KeyCtrlC:
		m.editor.Copy()
		return nil, true

	case tea.KeyCtrlV:
		m.editor.Paste()
		return nil, true
	}

	return nil, false
}

func (m Model) View() string {
	content := m.viewport.View()

	statusLine := m.getStatusLine()

	commandLine := ""
	if m.message != "" {
		commandLine = m.theme.MessageStyle.Render(m.message)
	}
	if m.err != nil {
		commandLine = m.theme.ErrorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		editorChan := m.editor.GetUpdateSignalChan()
		signal := <-editorChan

		switch signal := signal.(type) {
		case editor.MessageSignal:
			_, message := signal.Value()
			return messageMsg(message)

		case editor.ErrorSignal:
			_, err := signal.Value()
			return errMsg(err)

		case editor.DegradedLineSignal:
			return messageMsg(editor.GlyphMissingMessage)

		case editor.QuitSignal:
			return QuitMsg{}
		}

		return nil
	}
}

// convertBubbleKey maps a key press to an editing intent, or nil when the
// key has no editing meaning.
func convertBubbleKey(msg tea.KeyMsg) editor.Intent {
	switch msg.Type {
	case tea.KeyRunes:
		return editor.InsertText{Text: string(msg.Runes)}
	case tea.KeySpace:
		return editor.InsertText{Text: " "}
	case tea.KeyBackspace:
		return editor.DeleteBefore{}
	case tea.KeyDelete:
		return editor.DeleteAfter{}
	case tea.KeyEnter:
		direction := editor.LTR
		if msg.Alt {
			direction = editor.RTL
		}
		return editor.NewLine{Direction: direction}
	case tea.KeyLeft:
		return editor.MoveCursor{Direction: editor.CursorLeft}
	case tea.KeyRight:
		return editor.MoveCursor{Direction: editor.CursorRight}
	case tea.KeyUp:
		return editor.MoveCursor{Direction: editor.CursorUp}
	case tea.KeyDown:
		return editor.MoveCursor{Direction: editor.CursorDown}
	case tea.KeyHome:
		return editor.MoveCursor{Direction: editor.CursorHome}
	case tea.KeyEnd:
		return editor.MoveCursor{Direction: editor.CursorEnd}
	}

	return nil
}
