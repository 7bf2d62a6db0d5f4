package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/protocol"
)

type viewMode int

const (
	viewChat viewMode = iota
	viewHelp
	viewPipe
)

func (v viewMode) String() string {
	switch v {
	case viewHelp:
		return "help"
	case viewPipe:
		return "pipe"
	default:
		return "chat"
	}
}

type logLevel int

const (
	logLevelInfo logLevel = iota
	logLevelError
)

type logLine struct {
	label string
	body  string
	level logLevel
}

type pipeDirection string

const (
	pipeDirectionIn  pipeDirection = "IN"
	pipeDirectionOut pipeDirection = "OUT"
)

type pipeEntry struct {
	direction   pipeDirection
	messageType string
	timestamp   time.Time
	body        string
}

const pipeHistoryLimit = 100

type styleSet struct {
	title         lipgloss.Style
	view          lipgloss.Style
	statusOnline  lipgloss.Style
	statusOffline lipgloss.Style
	label         lipgloss.Style
	value         lipgloss.Style
	admin         lipgloss.Style
	logLabel      lipgloss.Style
	logBody       lipgloss.Style
	logLabelError lipgloss.Style
	logBodyError  lipgloss.Style
	help          lipgloss.Style
}

type commandSpec struct {
	trigger     string
	usage       string
	description string
}

// pendingRequest remembers what an outgoing event asked for until its ack
// arrives.
type pendingRequest struct {
	event    string
	username string
	room     string
}

// App implements the bubbletea tea.Model interface for the terminal client.
type App struct {
	cfg             config.ClientConfig
	session         *Session
	viewport        viewport.Model
	input           textinput.Model
	helper          help.Model
	styles          styleSet
	commands        []commandSpec
	view            viewMode
	width           int
	height          int
	helpHeight      int
	helpView        string
	showHelp        bool
	chatHistory     []string
	pipeHistory     []pipeEntry
	pendingRequests map[string]pendingRequest
	logLine         logLine
	statusOnline    bool
	serverAddr      string
	username        string
	room            string
	members         []string
}

type connectResultMsg struct {
	session *Session
	address string
	err     error
}

type sessionEnvelopeMsg struct {
	session  *Session
	envelope protocol.Envelope
}

type sessionClosedMsg struct {
	session *Session
}

type sendResultMsg struct {
	session     *Session
	id          string
	description string
	err         error
}

// NewApp returns a Bubble Tea model pre-populated with defaults.
func NewApp(cfg config.ClientConfig) tea.Model {
	return newApp(cfg)
}

func newApp(cfg config.ClientConfig) *App {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = fmt.Sprintf("Type a message or %chelp", cfg.Prefix())
	input.CharLimit = 1024
	input.Focus()

	app := &App{
		cfg:             cfg,
		viewport:        viewport.New(80, 20),
		input:           input,
		helper:          help.New(),
		styles:          buildStyles(),
		commands:        defaultCommands(cfg.Prefix()),
		view:            viewChat,
		pendingRequests: make(map[string]pendingRequest),
		serverAddr:      cfg.ServerURL,
		username:        "-",
		room:            "-",
	}
	app.logf("Use %cconnect to reach %s", cfg.Prefix(), cfg.ServerURL)
	app.updateViewportContent()
	return app
}

// Init is part of the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles user input and session events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.updateInputWidth()
		a.updateHelp()
		a.updateViewportSize()
		a.updateViewportContent()
		return a, nil
	case tea.KeyMsg:
		switch m.Type {
		case tea.KeyCtrlC:
			return a, a.quit()
		case tea.KeyEnter:
			value := strings.TrimSpace(a.input.Value())
			a.input.Reset()
			a.updateHelp()
			a.updateViewportSize()
			if value == "" {
				return a, nil
			}
			return a, a.handleSubmit(value)
		case tea.KeyTab:
			a.handleTabCompletion()
			a.updateHelp()
			a.updateViewportSize()
			return a, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(m)
			return a, cmd
		}
	case connectResultMsg:
		return a, a.handleConnectResult(m)
	case sessionEnvelopeMsg:
		if m.session != a.session {
			return a, nil
		}
		return a, tea.Batch(a.handleSessionEnvelope(m.envelope), a.listenForSession())
	case sessionClosedMsg:
		if m.session == a.session {
			a.session = nil
			a.statusOnline = false
			a.room = "-"
			a.members = nil
			a.logErrorf("Connection closed")
		}
		return a, nil
	case sendResultMsg:
		if m.err != nil && m.session == a.session {
			delete(a.pendingRequests, m.id)
			a.logErrorf("Failed to send %s: %v", m.description, m.err)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.updateHelp()
	a.updateViewportSize()
	return a, tea.Batch(cmds...)
}

func (a *App) handleConnectResult(msg connectResultMsg) tea.Cmd {
	if msg.session != a.session {
		_ = msg.session.Close()
		return nil
	}
	if msg.err != nil {
		a.session = nil
		a.statusOnline = false
		a.logErrorf("Connection to %s failed: %v", msg.address, msg.err)
		return nil
	}
	a.statusOnline = true
	a.logf("Connected to %s. Use %cjoin <name> <room> [lat lon]", msg.address, a.cfg.Prefix())
	return a.listenForSession()
}

func (a *App) quit() tea.Cmd {
	if a.session != nil {
		_ = a.session.Close()
		a.session = nil
	}
	a.statusOnline = false
	return tea.Quit
}

func (a *App) isConnected() bool {
	return a.session != nil && a.statusOnline
}

func (a *App) logf(format string, args ...interface{}) {
	a.logLine = logLine{label: "INFO", body: fmt.Sprintf(format, args...), level: logLevelInfo}
}

func (a *App) logErrorf(format string, args ...interface{}) {
	a.logLine = logLine{label: "ERROR", body: fmt.Sprintf(format, args...), level: logLevelError}
}
