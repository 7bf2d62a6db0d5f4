package chat

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fenggwsx/GeoChat/internal/geo"
)

// JoinRequest is what a client sends to enter a room.
type JoinRequest struct {
	Username  string   `json:"username" validate:"required,max=32"`
	Room      string   `json:"room" validate:"required,max=64"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Coordinates returns nil unless both coordinates were supplied.
func (r JoinRequest) Coordinates() *geo.Coordinates {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &geo.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// Controller runs the join, send, location and disconnect events against the
// Registry. It is not safe for concurrent use; the Dispatcher serialises calls.
type Controller struct {
	registry  *Registry
	directory *Directory
	relay     *Relay
	gate      geo.Gate
	filter    ContentFilter
	info      *geo.Region
	log       *slog.Logger
}

// Option customises a Controller.
type Option func(*Controller)

// WithInformationalRegion logs whether shared locations fall inside region.
// A nil region disables the check.
func WithInformationalRegion(region *geo.Region) Option {
	return func(c *Controller) {
		c.info = region
	}
}

// NewController wires the chat core around one registry.
func NewController(registry *Registry, gate geo.Gate, filter ContentFilter, transport Transport, log *slog.Logger, opts ...Option) *Controller {
	directory := NewDirectory(registry)
	c := &Controller{
		registry:  registry,
		directory: directory,
		relay:     NewRelay(directory, transport, log),
		gate:      gate,
		filter:    filter,
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Directory exposes the read-only room view.
func (c *Controller) Directory() *Directory {
	return c.directory
}

// Join admits the connection into a room. On success the joiner receives a
// welcome, the rest of the room an announcement, and the whole room the roster.
func (c *Controller) Join(id ConnectionID, req JoinRequest) (Participant, error) {
	coords := req.Coordinates()
	if !c.gate.Admit(coords) {
		c.log.Info("Join rejected by geo gate", "connection", id, "region", c.gate.Region().Name, "coordinates", coords)
		return Participant{}, reject(ErrGeoRejected, geoRejection(c.gate.Region()))
	}

	p, err := c.registry.Add(id, req.Username, req.Room)
	if err != nil {
		c.log.Info("Join rejected", "connection", id, "error", err)
		return Participant{}, err
	}

	c.relay.Send(id, EventMessage, c.relay.FormatTextMessage(AdminName, "Welcome!"))
	c.relay.BroadcastToRoom(p.Room, EventMessage, c.relay.FormatTextMessage(AdminName, p.DisplayName+" has joined!"), id)
	c.relay.BroadcastToRoom(p.Room, EventRoomData, c.directory.Roster(p.Room), "")

	c.log.Info("Participant joined", "connection", id, "username", p.DisplayName, "room", p.Room)
	return p, nil
}

// SendMessage relays text to the sender's whole room, sender included.
func (c *Controller) SendMessage(id ConnectionID, text string) error {
	p, ok := c.registry.Get(id)
	if !ok {
		return ErrUnknownConnection
	}

	if c.filter != nil {
		if err := c.filter.Check(text); err != nil {
			c.log.Info("Message rejected", "connection", id, "room", p.Room, "error", err)
			return reject(fmt.Errorf("%w: %w", ErrContentRejected, err), contentRejection(err))
		}
	}

	c.relay.BroadcastToRoom(p.Room, EventMessage, c.relay.FormatTextMessage(p.DisplayName, text), "")
	return nil
}

// SendLocation relays a map link for coords to the sender's whole room.
func (c *Controller) SendLocation(id ConnectionID, coords geo.Coordinates) error {
	p, ok := c.registry.Get(id)
	if !ok {
		return ErrUnknownConnection
	}
	if !geo.Valid(coords.Latitude, coords.Longitude) {
		return reject(ErrInvalidCoordinates, "Invalid coordinates!")
	}

	if c.info != nil {
		c.log.Info("Location shared",
			"username", p.DisplayName,
			"region", c.info.Name,
			"inside", c.info.Contains(coords.Latitude, coords.Longitude),
			"lat", coords.Latitude,
			"lon", coords.Longitude,
		)
	}

	url := geo.MapsURL(coords.Latitude, coords.Longitude)
	c.relay.BroadcastToRoom(p.Room, EventLocationMessage, c.relay.FormatLocationMessage(p.DisplayName, url), "")
	return nil
}

// Disconnect removes the connection and notifies the rest of its room. An
// unknown connection is a silent no-op.
func (c *Controller) Disconnect(id ConnectionID) (Participant, bool) {
	p, ok := c.registry.Remove(id)
	if !ok {
		return Participant{}, false
	}

	c.relay.BroadcastToRoom(p.Room, EventMessage, c.relay.FormatTextMessage(AdminName, p.DisplayName+" has left!"), "")
	c.relay.BroadcastToRoom(p.Room, EventRoomData, c.directory.Roster(p.Room), "")

	c.log.Info("Participant left", "connection", id, "username", p.DisplayName, "room", p.Room)
	return p, true
}

func geoRejection(region geo.Region) string {
	name := region.Name
	if name == "" {
		name = "the admitted region"
	}
	return "You are not in " + name + ", cannot access the chat!"
}

func contentRejection(err error) string {
	var reasoner interface{ Reason() string }
	if errors.As(err, &reasoner) {
		return reasoner.Reason()
	}
	return "Message rejected!"
}
