// Package contact implements the contact form submit flow.
//
// This is a stub. Submissions are validated and acknowledged after a fixed
// delay, but nothing is sent or stored anywhere.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDelay   = 1200 * time.Millisecond
	DefaultDisplay = 5000 * time.Millisecond
)

var (
	// ErrBusy is returned while a previous submit is still in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid contact message")
)

type Status int

const (
	Ready Status = iota
	Submitting
	Acknowledged
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	case Acknowledged:
		return "acknowledged"
	}
	return "unknown"
}

// Message is what a visitor fills in. Subject is optional.
type Message struct {
	Name    string `form:"name"    json:"name"    binding:"required"`
	Email   string `form:"email"   json:"email"   binding:"required,email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message" binding:"required"`
}

func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case strings.TrimSpace(m.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalid)
	case strings.TrimSpace(m.Message) == "":
		return fmt.Errorf("%w: message is required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrInvalid)
	}
	return nil
}

type Options struct {
	// Delay simulates the round trip before the acknowledgement.
	Delay time.Duration
	// Display is how long the success notice stays visible.
	Display time.Duration
}

func DefaultOptions() Options {
	return Options{Delay: DefaultDelay, Display: DefaultDisplay}
}

// Receipt acknowledges a submit. It does not refer to anything stored.
type Receipt struct {
	ID         uuid.UUID     `json:"id"`
	ReceivedAt time.Time     `json:"received_at"`
	DisplayFor time.Duration `json:"-"`
}

// Form holds the state of one contact form.
type Form struct {
	opts Options

	mu     sync.Mutex
	status Status
	fields Message
	timer  *time.Timer
	gen    uint64
}

func NewForm(opts Options) *Form {
	return &Form{opts: opts}
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Fields returns the current field values; they are cleared on acknowledgement.
func (f *Form) Fields() Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Submit validates m, holds the form in Submitting for the configured delay,
// then clears it and shows the acknowledgement for the display window.
func (f *Form) Submit(ctx context.Context, m Message) (Receipt, error) {
	if err := m.Validate(); err != nil {
		return Receipt{}, err
	}

	f.mu.Lock()
	if f.status == Submitting {
		f.mu.Unlock()
		return Receipt{}, ErrBusy
	}
	f.status = Submitting
	f.fields = m
	f.mu.Unlock()

	t := time.NewTimer(f.opts.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.status = Ready
		f.mu.Unlock()
		return Receipt{}, ctx.Err()
	case <-t.C:
	}

	receipt := Receipt{ID: uuid.New(), ReceivedAt: time.Now(), DisplayFor: f.opts.Display}

	f.mu.Lock()
	f.fields = Message{}
	f.status = Acknowledged
	f.gen++
	gen := f.gen
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.opts.Display, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen == gen && f.status == Acknowledged {
			f.status = Ready
		}
	})
	f.mu.Unlock()

	log.Info().
		Str("receipt", receipt.ID.String()).
		Bool("has_subject", m.Subject != "").
		Msg("[contact] message acknowledged (not delivered)")
	return receipt, nil
}

// Close stops a pending notice timer.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
