package chat

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/GeoChat/internal/geo"
	"github.com/fenggwsx/GeoChat/internal/moderation"
)

type emitted struct {
	To      ConnectionID
	Event   string
	Payload any
}

type recordingTransport struct {
	mu     sync.Mutex
	events []emitted
	fail   map[ConnectionID]error
}

func (r *recordingTransport) Emit(id ConnectionID, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail[id]; err != nil {
		return err
	}
	r.events = append(r.events, emitted{To: id, Event: event, Payload: payload})
	return nil
}

func (r *recordingTransport) all() []emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]emitted(nil), r.events...)
}

func (r *recordingTransport) to(id ConnectionID) []emitted {
	return lo.Filter(r.all(), func(e emitted, _ int) bool { return e.To == id })
}

func (r *recordingTransport) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	controller *Controller
	registry   *Registry
	transport  *recordingTransport
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	filter, err := moderation.NewModerator([]string{"badger"}, moderation.DefaultSentinels, log)
	require.NoError(t, err)

	registry := NewRegistry()
	transport := &recordingTransport{}
	controller := NewController(registry, geo.NewGate(geo.Sweden), filter, transport, log,
		WithInformationalRegion(&geo.China))
	return fixture{controller: controller, registry: registry, transport: transport}
}

// stockholm returns an admitted join request.
func stockholm(name, room string) JoinRequest {
	return JoinRequest{Username: name, Room: room, Latitude: lo.ToPtr(59.33), Longitude: lo.ToPtr(18.06)}
}

func texts(events []emitted) []string {
	return lo.FilterMap(events, func(e emitted, _ int) (string, bool) {
		msg, ok := e.Payload.(Message)
		if !ok || e.Event != EventMessage {
			return "", false
		}
		return msg.Text, true
	})
}

func rosters(events []emitted) [][]string {
	return lo.FilterMap(events, func(e emitted, _ int) ([]string, bool) {
		roster, ok := e.Payload.(Roster)
		if !ok || e.Event != EventRoomData {
			return nil, false
		}
		return roster.Names(), true
	})
}
