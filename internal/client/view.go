package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

const (
	// input, log and status lines
	chromeLines     = 3
	minViewportRows = 3
	minInputWidth   = 10
	minWrapWidth    = 10
)

// View renders the viewport, the command hints and the three footer lines.
func (a *App) View() string {
	sections := []string{a.viewport.View()}
	if a.showHelp && a.helpView != "" {
		sections = append(sections, a.styles.help.Render(a.helpView))
	}
	sections = append(sections, a.input.View(), a.logLineView(), a.statusLine())
	return strings.Join(sections, "\n")
}

func (a *App) updateViewportContent() {
	width := a.viewport.Width
	if width <= 0 {
		width = a.width
	}

	var content string
	switch a.view {
	case viewHelp:
		a.viewport.SetContent(a.renderHelpView())
		return
	case viewPipe:
		content = a.renderPipeView()
		if content == "" {
			content = fmt.Sprintf("No frames captured yet. Send something, or run %cpipe clear to reset.", a.cfg.Prefix())
		}
	default:
		content = a.renderChatView(width)
	}
	a.viewport.SetContent(content)
	a.viewport.GotoBottom()
}

func (a *App) renderChatView(width int) string {
	switch {
	case len(a.chatHistory) > 0:
		return strings.Join(wrapLines(a.chatHistory, width), "\n")
	case a.hasActiveRoom():
		return fmt.Sprintf("Nobody has said anything in %s yet.", a.room)
	default:
		return buildHomeContent(a.cfg.Prefix())
	}
}

func (a *App) hasActiveRoom() bool {
	room := strings.TrimSpace(a.room)
	return room != "" && room != "-"
}

func (a *App) updateViewportSize() {
	if a.height == 0 {
		return
	}
	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-chromeLines-a.helpHeight, minViewportRows)
}

func (a *App) updateInputWidth() {
	width := a.width
	if width <= 0 {
		width = 60
	}
	a.input.Width = max(width-lipgloss.Width(a.input.Prompt)-1, minInputWidth)
}

// updateHelp shows the commands matching the word being typed.
func (a *App) updateHelp() {
	a.showHelp, a.helpView, a.helpHeight = false, "", 0

	value := a.input.Value()
	if !strings.HasPrefix(value, string(a.cfg.Prefix())) {
		return
	}
	token, _, _ := strings.Cut(value, " ")
	bindings := a.matchingBindings(token)
	if len(bindings) == 0 {
		return
	}

	a.helper.Width = a.width
	a.helpView = strings.TrimRight(a.helper.View(commandKeyMap(bindings)), "\n")
	a.helpHeight = strings.Count(a.helpView, "\n") + 1
	a.showHelp = true
}

func (a *App) matchingBindings(token string) []key.Binding {
	token = strings.ToLower(token)
	return lo.FilterMap(a.commands, func(c commandSpec, _ int) (key.Binding, bool) {
		if !strings.HasPrefix(strings.ToLower(c.trigger), token) {
			return key.Binding{}, false
		}
		return key.NewBinding(key.WithKeys(c.usage), key.WithHelp(c.usage, c.description)), true
	})
}

func (a *App) statusLine() string {
	connection := a.styles.statusOffline.Render("OFFLINE")
	if a.statusOnline {
		connection = a.styles.statusOnline.Render("ONLINE")
	}
	field := func(label, value string) string {
		return a.styles.label.Render(label) + ": " + a.styles.value.Render(value)
	}
	return strings.Join([]string{
		a.styles.title.Render("GeoChat"),
		a.styles.view.Render(strings.ToUpper(a.view.String())),
		connection,
		field("Server", a.serverAddr),
		field("User", a.username),
		field("Room", a.room),
		field("Members", membersLabel(a.members)),
	}, " | ")
}

func (a *App) logLineView() string {
	if a.logLine.level == logLevelError {
		return a.styles.logLabelError.Render(a.logLine.label) + " " + a.styles.logBodyError.Render(a.logLine.body)
	}
	return a.styles.logLabel.Render(a.logLine.label) + " " + a.styles.logBody.Render(a.logLine.body)
}

func buildStyles() styleSet {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return styleSet{
		title:         fg("10").Bold(true),
		view:          fg("14").Bold(true),
		statusOnline:  fg("10").Bold(true),
		statusOffline: fg("9").Bold(true),
		label:         fg("8"),
		value:         fg("15"),
		admin:         fg("11").Bold(true),
		logLabel:      fg("12").Bold(true),
		logBody:       fg("7"),
		logLabelError: fg("9").Bold(true),
		logBodyError:  fg("9"),
		help:          fg("6"),
	}
}

func (a *App) renderHelpView() string {
	lines := lo.Map(a.commands, func(c commandSpec, _ int) string {
		return fmt.Sprintf("%-30s %s", c.usage, c.description)
	})
	return "GeoChat Commands\n\n" + strings.Join(lines, "\n") +
		"\n\nAnything not starting with the command prefix is sent to your room."
}

func (a *App) renderPipeView() string {
	blocks := lo.Map(a.pipeHistory, func(entry pipeEntry, _ int) string {
		kind := strings.ToUpper(entry.messageType)
		if kind == "" {
			kind = "UNKNOWN"
		}
		header := fmt.Sprintf("[%s %-3s %s]", entry.timestamp.Format("15:04:05.000"), entry.direction, kind)
		return a.styles.label.Render(header) + "\n" + entry.body
	})
	return strings.Join(blocks, "\n\n")
}

func buildHomeContent(prefix rune) string {
	art := strings.TrimRight(figure.NewColorFigure("GEO CHAT", "3-d", "green", true).String(), "\n")
	p := string(prefix)
	return art + "\n\n" + strings.Join([]string{
		"Use " + p + "connect to reach the server.",
		"Use " + p + "join <name> <room> <lat> <lon> to enter a room from inside the admitted region.",
		"Use " + p + "location <lat> <lon> to share a map link with your room.",
		"Use " + p + "pipe to inspect raw transport frames.",
		"Use " + p + "help to browse all commands.",
	}, "\n")
}

func membersLabel(members []string) string {
	if len(members) == 0 {
		return "-"
	}
	return strings.Join(members, ", ")
}

// wrapLines breaks each line on spaces so that no row is wider than width
// terminal cells. Words wider than a row are split by cell width.
func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	width = max(width, minWrapWidth)

	var rows []string
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			rows = append(rows, "")
			continue
		}
		var current string
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if current != "" {
					rows = append(rows, current)
					current = ""
				}
				head := runewidth.Truncate(word, width, "")
				rows = append(rows, head)
				word = word[len(head):]
			}
			switch {
			case word == "":
			case current == "":
				current = word
			case runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width:
				current += " " + word
			default:
				rows = append(rows, current)
				current = word
			}
		}
		if current != "" {
			rows = append(rows, current)
		}
	}
	return rows
}

type commandKeyMap []key.Binding

func (k commandKeyMap) ShortHelp() []key.Binding { return k }

func (k commandKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k} }
