package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/fenggwsx/GeoChat/internal/geo"
	"github.com/fenggwsx/GeoChat/internal/protocol"
)

var errUsage = errors.New("usage")

func (a *App) handleSubmit(value string) tea.Cmd {
	if strings.HasPrefix(value, string(a.cfg.Prefix())) {
		return a.executeCommand(value)
	}
	return a.sendChatMessage(value)
}

func (a *App) executeCommand(raw string) tea.Cmd {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	prefix := string(a.cfg.Prefix())
	name := strings.ToLower(strings.TrimPrefix(fields[0], prefix))
	args := fields[1:]

	switch name {
	case "chat":
		a.view = viewChat
		a.logf("Switched to CHAT view")
	case "help":
		a.view = viewHelp
		a.logf("Switched to HELP view")
	case "pipe":
		if len(args) > 0 && strings.EqualFold(args[0], "clear") {
			a.pipeHistory = nil
			a.logf("Pipe history cleared")
		} else {
			a.view = viewPipe
			a.logf("Switched to PIPE view")
		}
	case "connect":
		target := a.cfg.ServerURL
		if len(args) > 0 {
			target = args[0]
		}
		return a.connectToServer(target)
	case "join":
		req, err := parseJoinArgs(args)
		if err != nil {
			a.logErrorf("Usage: %sjoin <name> <room> [lat lon]", prefix)
			return nil
		}
		if !a.isConnected() {
			a.logErrorf("Not connected. Use %sconnect first.", prefix)
			return nil
		}
		a.logf("Joining room %s as %s ...", req.Room, req.Username)
		return a.sendJoinCommand(req)
	case "location":
		coords, err := parseCoordinates(args)
		if err != nil {
			a.logErrorf("Usage: %slocation <lat> <lon>", prefix)
			return nil
		}
		if !a.isConnected() {
			a.logErrorf("Not connected. Use %sconnect first.", prefix)
			return nil
		}
		return a.sendLocationCommand(coords)
	case "quit", "exit":
		return a.quit()
	default:
		a.logErrorf("Unknown command: %s", fields[0])
	}
	a.updateViewportContent()
	return nil
}

// parseJoinArgs reads "<name> <room> [lat lon]".
func parseJoinArgs(args []string) (protocol.JoinRequest, error) {
	if len(args) != 2 && len(args) != 4 {
		return protocol.JoinRequest{}, errUsage
	}
	req := protocol.JoinRequest{Username: args[0], Room: args[1]}
	if len(args) == 4 {
		coords, err := parseCoordinates(args[2:])
		if err != nil {
			return protocol.JoinRequest{}, err
		}
		req.Latitude = &coords.Latitude
		req.Longitude = &coords.Longitude
	}
	return req, nil
}

// parseCoordinates reads "<lat> <lon>" and rejects values off the globe.
func parseCoordinates(args []string) (geo.Coordinates, error) {
	if len(args) != 2 {
		return geo.Coordinates{}, errUsage
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: latitude %q", errUsage, args[0])
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: longitude %q", errUsage, args[1])
	}
	if !geo.Valid(lat, lon) {
		return geo.Coordinates{}, fmt.Errorf("%w: %v,%v out of range", errUsage, lat, lon)
	}
	return geo.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func (a *App) connectToServer(target string) tea.Cmd {
	if target == "" {
		return nil
	}
	if a.session != nil {
		_ = a.session.Close()
	}

	cfg := a.cfg
	cfg.ServerURL = target
	session := NewSession(cfg)
	a.session = session
	a.serverAddr = target
	a.statusOnline = false
	a.pendingRequests = make(map[string]pendingRequest)
	a.room = "-"
	a.members = nil
	a.logf("Connecting to %s ...", target)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := session.Connect(ctx)
		return connectResultMsg{session: session, address: target, err: err}
	}
}

func (a *App) listenForSession() tea.Cmd {
	session := a.session
	if session == nil {
		return nil
	}
	return func() tea.Msg {
		env, ok := <-session.Messages()
		if !ok {
			return sessionClosedMsg{session: session}
		}
		return sessionEnvelopeMsg{session: session, envelope: env}
	}
}

func (a *App) sendJoinCommand(req protocol.JoinRequest) tea.Cmd {
	env := protocol.NewEvent(protocol.EventJoin, req)
	a.pendingRequests[env.ID] = pendingRequest{event: protocol.EventJoin, username: req.Username, room: req.Room}
	return a.sendEnvelope(a.session, env, "join")
}

func (a *App) sendLocationCommand(coords geo.Coordinates) tea.Cmd {
	env := protocol.NewEvent(protocol.EventSendLocation, protocol.SendLocationRequest(coords))
	a.pendingRequests[env.ID] = pendingRequest{event: protocol.EventSendLocation, room: a.room}
	return a.sendEnvelope(a.session, env, "location")
}

func (a *App) sendChatMessage(content string) tea.Cmd {
	if !a.isConnected() {
		a.logErrorf("Not connected. Use %cconnect first.", a.cfg.Prefix())
		return nil
	}
	env := protocol.NewEvent(protocol.EventSendMessage, protocol.SendMessageRequest{Text: content})
	a.pendingRequests[env.ID] = pendingRequest{event: protocol.EventSendMessage, room: a.room}
	return a.sendEnvelope(a.session, env, "chat message")
}

func (a *App) sendEnvelope(session *Session, env protocol.Envelope, description string) tea.Cmd {
	if session == nil {
		return nil
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	a.appendPipeEntry(pipeDirectionOut, env)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := session.Send(ctx, env)
		return sendResultMsg{session: session, id: env.ID, description: description, err: err}
	}
}

func defaultCommands(prefix rune) []commandSpec {
	p := string(prefix)
	return []commandSpec{
		{trigger: p + "connect", usage: p + "connect [url]", description: "Connect to the server"},
		{trigger: p + "join", usage: p + "join <name> <room> [lat lon]", description: "Join a room from your location"},
		{trigger: p + "location", usage: p + "location <lat> <lon>", description: "Share a map link with your room"},
		{trigger: p + "chat", usage: p + "chat", description: "Switch to chat view"},
		{trigger: p + "help", usage: p + "help", description: "Show command help"},
		{trigger: p + "pipe", usage: p + "pipe [clear]", description: "Inspect transport JSON frames"},
		{trigger: p + "quit", usage: p + "quit", description: "Exit the client"},
	}
}
