package site

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MsgInvalidEmail  = "Please enter a valid email address"
	MsgNameTooShort  = "Name must be at least 2 characters"
	MsgMessageShort  = "Message must be at least 10 characters"
	MsgFixErrors     = "Please fix the errors above"
	MsgSent          = "Message sent successfully! I'll get back to you soon."
	StatusFormError  = "error"
	StatusFormSentOK = "success"
)

// ContactFields lists the form fields in display and validation order.
var ContactFields = []string{"name", "email", "subject", "message"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var titleCaser = cases.Title(language.English)

type Submission struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Inbox receives accepted contact messages.
type Inbox interface {
	Deliver(ctx context.Context, s Submission) error
}

// FormState is what the contact form renders: current values, per-field
// errors and the form-level message.
type FormState struct {
	Values  map[string]string `json:"values"`
	Errors  map[string]string `json:"errors"`
	Message string            `json:"message,omitempty"`
	Status  string            `json:"status,omitempty"`
}

func (s FormState) Value(field string) string { return s.Values[field] }

func (s FormState) Error(field string) string { return s.Errors[field] }

func EmptyForm() FormState {
	return FormState{Values: map[string]string{}, Errors: map[string]string{}}
}

// ValidateField checks one field's trimmed value. It returns "" when valid.
func ValidateField(field, value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return titleCaser.String(field) + " is required"
	case field == "email" && !emailPattern.MatchString(value):
		return MsgInvalidEmail
	case field == "name" && utf8.RuneCountInString(value) < 2:
		return MsgNameTooShort
	case field == "message" && utf8.RuneCountInString(value) < 10:
		return MsgMessageShort
	}
	return ""
}

type ContactController struct {
	inbox Inbox
}

func NewContactController(inbox Inbox) *ContactController {
	return &ContactController{inbox: inbox}
}

// Submit validates every field. Any failure keeps the values and reports
// MsgFixErrors; success delivers to the inbox and resets the form.
func (c *ContactController) Submit(ctx context.Context, values map[string]string) (FormState, error) {
	st := EmptyForm()
	for _, f := range ContactFields {
		st.Values[f] = values[f]
		if msg := ValidateField(f, values[f]); msg != "" {
			st.Errors[f] = msg
		}
	}
	if len(st.Errors) > 0 {
		st.Message = MsgFixErrors
		st.Status = StatusFormError
		return st, nil
	}

	sub := Submission{
		Name:    strings.TrimSpace(values["name"]),
		Email:   strings.TrimSpace(values["email"]),
		Subject: strings.TrimSpace(values["subject"]),
		Message: strings.TrimSpace(values["message"]),
	}
	if err := c.inbox.Deliver(ctx, sub); err != nil {
		return st, fmt.Errorf("deliver contact message: %w", err)
	}

	st = EmptyForm()
	st.Message = MsgSent
	st.Status = StatusFormSentOK
	return st, nil
}

// MemoryInbox keeps delivered messages in memory.
type MemoryInbox struct {
	mu    sync.RWMutex
	now   func() time.Time
	items []Submission
}

func NewMemoryInbox(now func() time.Time) *MemoryInbox {
	if now == nil {
		now = time.Now
	}
	return &MemoryInbox{now: now}
}

func (b *MemoryInbox) Deliver(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.ID = uuid.NewString()
	s.ReceivedAt = b.now()

	b.mu.Lock()
	b.items = append(b.items, s)
	b.mu.Unlock()
	return nil
}

func (b *MemoryInbox) List() []Submission {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Submission(nil), b.items...)
}
