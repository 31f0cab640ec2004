package contactclient

import (
	"fmt"
	"io"
	"sync"

	"github.com/folio/backend/pkg/contactform"
)

// Presenter is the single error presentation strategy of a Form.
type Presenter interface {
	// FieldError shows msg next to one field.
	FieldError(field, msg string)
	ClearFieldError(field string)
	ClearFieldErrors()
	// Notice shows a form-wide failure message.
	Notice(msg string)
	Success(msg string)
}

// InlinePresenter keeps one message per field and writes each change to w.
type InlinePresenter struct {
	w io.Writer

	mu     sync.Mutex
	errors contactform.Errors
}

func NewInlinePresenter(w io.Writer) *InlinePresenter {
	return &InlinePresenter{w: w, errors: contactform.Errors{}}
}

func (p *InlinePresenter) FieldError(field, msg string) {
	p.mu.Lock()
	p.errors[field] = msg
	p.mu.Unlock()
	fmt.Fprintf(p.w, "%s: %s\n", field, msg)
}

func (p *InlinePresenter) ClearFieldError(field string) {
	p.mu.Lock()
	delete(p.errors, field)
	p.mu.Unlock()
}

func (p *InlinePresenter) ClearFieldErrors() {
	p.mu.Lock()
	p.errors = contactform.Errors{}
	p.mu.Unlock()
}

func (p *InlinePresenter) Notice(msg string) {
	fmt.Fprintf(p.w, "error: %s\n", msg)
}

func (p *InlinePresenter) Success(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Errors returns the messages currently shown, keyed by field.
func (p *InlinePresenter) Errors() contactform.Errors {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(contactform.Errors, len(p.errors))
	for k, v := range p.errors {
		out[k] = v
	}
	return out
}

// NoticePresenter shows every failure as one global notice. While a field
// error is on display, further field errors are dropped until it is cleared,
// so a failed submit shows the first offending field's message.
type NoticePresenter struct {
	w io.Writer

	mu      sync.Mutex
	current string
	field   string
}

func NewNoticePresenter(w io.Writer) *NoticePresenter {
	return &NoticePresenter{w: w}
}

func (p *NoticePresenter) FieldError(field, msg string) {
	p.mu.Lock()
	if p.current != "" {
		p.mu.Unlock()
		return
	}
	p.current, p.field = msg, field
	p.mu.Unlock()
	fmt.Fprintf(p.w, "error: %s\n", msg)
}

func (p *NoticePresenter) ClearFieldError(field string) {
	p.mu.Lock()
	if p.field == field {
		p.current, p.field = "", ""
	}
	p.mu.Unlock()
}

// ClearFieldErrors dismisses whatever notice is showing.
func (p *NoticePresenter) ClearFieldErrors() {
	p.mu.Lock()
	p.current, p.field = "", ""
	p.mu.Unlock()
}

func (p *NoticePresenter) Notice(msg string) {
	p.mu.Lock()
	p.current, p.field = msg, ""
	p.mu.Unlock()
	fmt.Fprintf(p.w, "error: %s\n", msg)
}

func (p *NoticePresenter) Success(msg string) {
	p.mu.Lock()
	p.current, p.field = "", ""
	p.mu.Unlock()
	fmt.Fprintln(p.w, msg)
}

// Current returns the notice being shown, or "".
func (p *NoticePresenter) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
