package contactclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/folio/backend/pkg/contactform"
)

// ErrInFlight is returned by Form.Submit while another submission from the
// same form has not resolved yet.
var ErrInFlight = errors.New("contactclient: submission already in flight")

// EventType identifies a form lifecycle event.
type EventType int

const (
	EventSubmitting EventType = iota
	EventResolved
)

// Event is delivered to subscribers. Outcome is set on EventResolved only.
type Event struct {
	Type    EventType
	Outcome *Outcome
}

// Submitter is the part of Client a Form needs.
type Submitter interface {
	Submit(ctx context.Context, f contactform.Fields) Outcome
}

// Form holds the values being typed into the contact form and reports
// feedback through exactly one Presenter.
type Form struct {
	client    Submitter
	presenter Presenter
	inFlight  atomic.Bool

	mu     sync.Mutex
	fields contactform.Fields
	subs   []func(Event)
}

// NewForm binds a form to a submitter and its presentation strategy.
func NewForm(client Submitter, presenter Presenter) *Form {
	return &Form{client: client, presenter: presenter}
}

// Set stores a field value and clears any error shown for it. Unknown field
// names are ignored and report false.
func (f *Form) Set(field, value string) bool {
	f.mu.Lock()
	ok := f.fields.Set(field, value)
	f.mu.Unlock()
	if ok {
		f.presenter.ClearFieldError(field)
	}
	return ok
}

// Fields returns a copy of the current values.
func (f *Form) Fields() contactform.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Blur validates a single field as it loses focus. An empty field shows no
// error; it is caught on submit instead. It reports whether the value is valid.
func (f *Form) Blur(field string) bool {
	value := f.Fields().Get(field)
	msg := contactform.ValidateField(field, value)
	if msg != "" && value != "" {
		f.presenter.FieldError(field, msg)
	} else {
		f.presenter.ClearFieldError(field)
	}
	return msg == ""
}

// Subscribe registers fn for lifecycle events. Callbacks run synchronously
// on the submitting goroutine.
func (f *Form) Subscribe(fn func(Event)) {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}

func (f *Form) emit(ev Event) {
	f.mu.Lock()
	subs := make([]func(Event), len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// Submit sends the current values once and routes the outcome to the
// presenter. On success the fields are cleared.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrInFlight
	}
	defer f.inFlight.Store(false)

	f.emit(Event{Type: EventSubmitting})
	out := f.client.Submit(ctx, f.Fields())

	switch out.Kind {
	case Succeeded:
		f.mu.Lock()
		f.fields = contactform.Fields{}
		f.mu.Unlock()
		f.presenter.ClearFieldErrors()
		f.presenter.Success(out.Message)
	case ValidationFailed:
		f.presenter.ClearFieldErrors()
		for _, name := range out.FieldErrors.Fields() {
			f.presenter.FieldError(name, out.FieldErrors[name])
		}
	default:
		f.presenter.Notice(out.Message)
	}

	f.emit(Event{Type: EventResolved, Outcome: &out})
	return out, nil
}
