package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

// PromptKind is what the input line is currently waiting for
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptPlay
	PromptChallenge
)

// TUIModel represents the Bubble Tea model for the BS table
type TUIModel struct {
	logger *log.Logger
	mu     sync.Mutex

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Table state, refreshed from engine snapshots
	snapshot game.Snapshot
	prompt   PromptKind
	claim    game.Claim

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// ActionResult is one submitted input line
type ActionResult struct {
	Input    string
	Continue bool
	Error    error
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	// Properly sized when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter to continue"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		actionInput:  ti,
		gameLog:      []string{},
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1,
		testMode:     testMode,
		capturedLog:  []string{},
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.sendResult(ActionResult{Continue: false})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.submit(m.actionInput.Value())
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1))
	actionPane := actionStyle.Render(actionContent)

	// Sidebar pane (right of the log, same height)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Log pane (top left)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the required card, the pile and every hand size
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder
	snap := m.snapshot

	if snap.GameID == "" {
		content.WriteString(InfoStyle.Render("Waiting for the deal"))
		return content.String()
	}

	content.WriteString(RequiredCardStyle.Render(fmt.Sprintf("Card: %s", snap.Required)))
	content.WriteString(" | ")
	content.WriteString(PromptStyle.Render(fmt.Sprintf("Pile: %d", snap.PileSize)))
	content.WriteString("\n\n")

	content.WriteString(InfoStyle.Render("Cards in hand:"))
	content.WriteString("\n")
	for _, p := range snap.Players {
		line := fmt.Sprintf("  %s: %d", p.Name, p.HandSize)
		if p.Name == snap.Acting {
			content.WriteString(ActingPlayerStyle.Render(line + " *"))
		} else {
			content.WriteString(PlayerInfoStyle.Render(line))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Turn %d", snap.Turn+1)))
	return content.String()
}

// renderActionPane renders the hand, what is being asked, and the input line
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if len(m.snapshot.HumanHand) > 0 {
		content.WriteString(HandInfoStyle.Render("Hand: " + deck.FormatCards(m.snapshot.HumanHand)))
		content.WriteString("\n")
	}

	switch m.prompt {
	case PromptPlay:
		content.WriteString(PromptStyle.Render(fmt.Sprintf("Play 1-4 cards as %s", m.snapshot.Required)))
		m.actionInput.Placeholder = "Type the cards to play, e.g. A A"
	case PromptChallenge:
		content.WriteString(PromptStyle.Render(fmt.Sprintf("%s claims %d x %s. Call BS?", m.claim.Player, m.claim.Count, m.claim.Required)))
		m.actionInput.Placeholder = "y or n"
	default:
		content.WriteString(HandInfoStyle.Render("Waiting..."))
		m.actionInput.Placeholder = "Enter to continue, 'quit' to exit"
	}
	content.WriteString("\n")

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.addLogEntry(entry, entry)
}

// AddStyledLogEntry adds an entry rendered with style. Test mode captures
// the plain text.
func (m *TUIModel) AddStyledLogEntry(style lipgloss.Style, entry string) {
	m.addLogEntry(style.Render(entry), entry)
}

func (m *TUIModel) addLogEntry(rendered, plain string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gameLog = append(m.gameLog, rendered)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, plain)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameLog = []string{}
	m.logViewport.SetContent("")
}

// UpdateSnapshot refreshes the table state shown in the sidebar
func (m *TUIModel) UpdateSnapshot(snap game.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snap
}

// SetPrompt sets what the input line is waiting for
func (m *TUIModel) SetPrompt(kind PromptKind, claim game.Claim) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompt = kind
	m.claim = claim
}

// Prompt returns what the input line is waiting for
func (m *TUIModel) Prompt() PromptKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompt
}

func (m *TUIModel) submit(input string) {
	m.sendResult(ActionResult{Input: strings.TrimSpace(input), Continue: true})
}

// sendResult never blocks the UI loop; input typed while the engine is
// busy is dropped.
func (m *TUIModel) sendResult(result ActionResult) {
	select {
	case m.actionResult <- result:
	default:
		m.logger.Debug("Dropped input, engine not waiting", "input", result.Input)
	}
}

// WaitForAction waits for user input (for use by the game loop)
func (m *TUIModel) WaitForAction() (string, bool, error) {
	result := <-m.actionResult
	return result.Input, result.Continue, result.Error
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an input line (test mode only)
func (m *TUIModel) InjectAction(input string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{Input: input, Continue: true}:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
