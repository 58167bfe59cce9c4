package audit

import "log/slog"

type Event struct {
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Dispatcher writes audit entries off the request path. The queue is bounded
// and lossy: a full queue drops the event rather than blocking the API.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(ev.UserID, ev.Action, ev.Entity, ev.EntityID, ev.Metadata); err != nil {
			slog.Error("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch is nil-safe so callers do not have to care whether auditing
// is wired up.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
}
