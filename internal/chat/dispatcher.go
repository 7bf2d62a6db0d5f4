package chat

import (
	"context"
	"log/slog"

	"github.com/fenggwsx/GeoChat/internal/geo"
)

type task struct {
	name  string
	run   func() error
	reply chan error
}

// Dispatcher is the single goroutine allowed to drive the Controller. Each
// transport event is queued as one task and run to completion before the next.
type Dispatcher struct {
	controller *Controller
	tasks      chan task
	done       chan struct{}
	log        *slog.Logger
}

// NewDispatcher returns a dispatcher with a task queue of the given depth.
func NewDispatcher(controller *Controller, queue int, log *slog.Logger) *Dispatcher {
	if queue <= 0 {
		queue = 1
	}
	return &Dispatcher{
		controller: controller,
		tasks:      make(chan task, queue),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run processes tasks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	d.log.Info("Dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.log.Info("Dispatcher stopped", "pending", len(d.tasks))
			return nil
		case t := <-d.tasks:
			err := t.run()
			if err != nil {
				d.log.Debug("Task failed", "task", t.name, "error", err)
			}
			if t.reply != nil {
				t.reply <- err
			}
		}
	}
}

// Directory exposes the read-only room view for observability.
func (d *Dispatcher) Directory() *Directory {
	return d.controller.Directory()
}

// Join submits a join and waits for its outcome.
func (d *Dispatcher) Join(ctx context.Context, id ConnectionID, req JoinRequest) error {
	return d.call(ctx, "join", func() error {
		_, err := d.controller.Join(id, req)
		return err
	})
}

// SendMessage submits a chat message and waits for its outcome.
func (d *Dispatcher) SendMessage(ctx context.Context, id ConnectionID, text string) error {
	return d.call(ctx, "sendMessage", func() error {
		return d.controller.SendMessage(id, text)
	})
}

// SendLocation submits a location share and waits for its outcome.
func (d *Dispatcher) SendLocation(ctx context.Context, id ConnectionID, coords geo.Coordinates) error {
	return d.call(ctx, "sendLocation", func() error {
		return d.controller.SendLocation(id, coords)
	})
}

// Disconnect queues the removal of id without waiting for it.
func (d *Dispatcher) Disconnect(id ConnectionID) {
	t := task{name: "disconnect", run: func() error {
		d.controller.Disconnect(id)
		return nil
	}}
	select {
	case d.tasks <- t:
	case <-d.done:
		d.log.Debug("Disconnect dropped after shutdown", "connection", id)
	}
}

func (d *Dispatcher) call(ctx context.Context, name string, run func() error) error {
	t := task{name: name, run: run, reply: make(chan error, 1)}

	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}

	select {
	case d.tasks <- t:
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.reply:
		return err
	case <-d.done:
		select {
		case err := <-t.reply:
			return err
		default:
			return ErrDispatcherStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
