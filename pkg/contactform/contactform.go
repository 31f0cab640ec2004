// Package contactform holds the contact form field rules shared by the
// browser-facing client and the HTTP service.
package contactform

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names as they appear in the form and the JSON body.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

const (
	MinNameLength    = 2
	MinSubjectLength = 5
	MinMessageLength = 10
	MaxMessageLength = 5000
)

// Rule messages shown next to the offending field.
const (
	MsgName           = "Name must be at least 2 characters long"
	MsgEmail          = "Please enter a valid email address"
	MsgSubject        = "Subject must be at least 5 characters long"
	MsgMessage        = "Message must be at least 10 characters long"
	MsgMessageTooLong = "Message must be at most 5000 characters long"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// order is the order fields appear on the form.
var order = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Fields is the user-entered part of a contact submission.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Get returns the value of the named field.
func (f Fields) Get(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	}
	return ""
}

// Set assigns the named field. It reports false for unknown field names.
func (f *Fields) Set(field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

// Normalize trims every field and lowercases the email address.
func Normalize(f Fields) Fields {
	return Fields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.ToLower(strings.TrimSpace(f.Email)),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// MissingRequired reports whether any field is blank after trimming.
func MissingRequired(f Fields) bool {
	for _, name := range order {
		if strings.TrimSpace(f.Get(name)) == "" {
			return true
		}
	}
	return false
}

// Errors maps a field name to the rule message it violated.
type Errors map[string]string

// First returns the message of the first offending field in form order.
func (e Errors) First() string {
	for _, name := range order {
		if msg, ok := e[name]; ok {
			return msg
		}
	}
	return ""
}

// Fields returns the offending field names in form order.
func (e Errors) Fields() []string {
	var out []string
	for _, name := range order {
		if _, ok := e[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Validate checks every field and returns the violations, or nil when the
// submission is acceptable.
func Validate(f Fields) Errors {
	var errs Errors
	for _, name := range order {
		if msg := ValidateField(name, f.Get(name)); msg != "" {
			if errs == nil {
				errs = Errors{}
			}
			errs[name] = msg
		}
	}
	return errs
}

// ValidateField checks a single field value and returns the rule message it
// violates, or "" when the value is acceptable.
func ValidateField(field, value string) string {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	switch field {
	case FieldName:
		if n < MinNameLength {
			return MsgName
		}
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return MsgEmail
		}
	case FieldSubject:
		if n < MinSubjectLength {
			return MsgSubject
		}
	case FieldMessage:
		if n < MinMessageLength {
			return MsgMessage
		}
		if n > MaxMessageLength {
			return MsgMessageTooLong
		}
	}
	return ""
}
