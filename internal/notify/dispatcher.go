package notify

import "log/slog"

type Email struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher sends mail off the request path. Bounded and lossy: a full
// queue drops the message rather than blocking the API.
type Dispatcher struct {
	mailer *Mailer
	queue  chan Email
}

func NewDispatcher(mailer *Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Email, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
			slog.Error("mail send failed", "to", msg.To, "err", err)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Email) {
	select {
	case d.queue <- msg:
	default:
		slog.Warn("mail queue full, dropping message", "to", msg.To)
	}
}

func (d *Dispatcher) Close() {
	close(d.queue)
}
