package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/domain"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/Domenick1991/pestbooking/internal/metrics"
	"github.com/Domenick1991/pestbooking/internal/validation"
	"go.uber.org/zap"
)

type State string

const (
	StateEditing    State = "EDITING"
	StateSubmitting State = "SUBMITTING"
	StateCompleted  State = "COMPLETED"
)

var (
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
	ErrSessionCompleted = errors.New("session is already completed")
	ErrSubmissionFailed = errors.New("submission failed")
	ErrDateNotBookable  = errors.New("date is not bookable")
	ErrUnknownTimeSlot  = errors.New("unknown time slot")
	ErrUnknownField     = errors.New("unknown form field")
)

// Submitter is the boundary that receives a finished booking record.
type Submitter interface {
	Submit(ctx context.Context, record domain.Record) (*domain.Booking, error)
}

// Env carries the read-only collaborators shared by every session.
type Env struct {
	Evaluator       *calendar.Evaluator
	TimeSlots       []string
	Location        *time.Location
	Submitter       Submitter
	SubmitTimeout   time.Duration
	ConfirmationURL string
	Now             func() time.Time
	Logger          *zap.Logger
	Metrics         *metrics.BookingMetrics
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Controller owns the draft of one booking session. Every mutation
// re-validates synchronously, so Errors always matches the current draft.
type Controller struct {
	mu sync.Mutex

	id          string
	pack        domain.Pack
	showCompany bool
	env         Env
	log         *zap.Logger

	draft        domain.Draft
	date         *calendar.Date
	slot         string
	touched      Touched
	errs         validation.FieldErrors
	state        State
	submitFailed bool
	booking      *domain.Booking
	lastActive   time.Time
}

func NewController(id string, pack domain.Pack, showCompany bool, env Env) *Controller {
	c := &Controller{
		id:          id,
		pack:        pack,
		showCompany: showCompany,
		env:         env,
		log:         logging.OrNop(env.Logger).With(zap.String("session_id", id), zap.String("pack", pack.Slug)),
		touched:     Touched{},
		state:       StateEditing,
		lastActive:  env.now(),
	}
	c.revalidate()
	return c
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Pack() domain.Pack {
	return c.pack
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EditField stores value in the draft section owning field and marks the
// field touched. Unknown fields and edits to a completed session are ignored.
func (c *Controller) EditField(field domain.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = c.env.now()
	if c.state == StateCompleted {
		return
	}
	if !c.draft.Set(field, value) {
		c.log.Debug("ignoring edit of unknown field", zap.String("field", string(field)))
		return
	}
	c.touched.Mark(field)
	c.revalidate()
}

// SelectDate sets the appointment day. Days failing the past, weekend or
// holiday rules are refused.
func (c *Controller) SelectDate(d calendar.Date) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = c.env.now()
	if c.state == StateCompleted {
		return ErrSessionCompleted
	}
	today := calendar.Today(c.lastActive, c.env.Location)
	if reasons := c.env.Evaluator.Reasons(d, today); len(reasons) > 0 {
		return fmt.Errorf("%w: %s (%v)", ErrDateNotBookable, d, reasons)
	}
	if !c.env.Evaluator.Covers(d.Year) {
		c.log.Warn("holiday calendar does not cover selected year", zap.Int("year", d.Year))
	}
	c.date = &d
	return nil
}

func (c *Controller) SelectTime(slot string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = c.env.now()
	if c.state == StateCompleted {
		return ErrSessionCompleted
	}
	if !slices.Contains(c.env.TimeSlots, slot) {
		return fmt.Errorf("%w: %q", ErrUnknownTimeSlot, slot)
	}
	c.slot = slot
	return nil
}

// Errors returns every current validation error, touched or not.
func (c *Controller) Errors() validation.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyErrors()
}

// VisibleErrors returns the errors of touched fields only.
func (c *Controller) VisibleErrors() validation.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched.Filter(c.errs)
}

func (c *Controller) IsComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validation.IsComplete(c.draft, c.date, c.slot)
}

// Result describes how a submit attempt ended.
type Result struct {
	Blocked       bool                   `json:"blocked"`
	VisibleErrors validation.FieldErrors `json:"errors,omitempty"`
	Booking       *domain.Booking        `json:"booking,omitempty"`
	RedirectURL   string                 `json:"redirect_url,omitempty"`
}

// Submit reveals every field error and, when the draft is complete, hands
// the frozen record to the submission boundary. An incomplete draft is not
// an error: the result is Blocked and the session stays in Editing. Only
// one submission may be in flight.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	c.lastActive = c.env.now()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		c.env.Metrics.ObserveSubmission(metrics.OutcomeRejected, c.pack.Slug)
		return Result{}, ErrSubmitInFlight
	case StateCompleted:
		c.mu.Unlock()
		return Result{}, ErrSessionCompleted
	}

	c.touched.MarkAll(domain.RequiredFields())
	c.revalidate()
	if !validation.IsComplete(c.draft, c.date, c.slot) {
		res := Result{Blocked: true, VisibleErrors: c.touched.Filter(c.errs)}
		c.mu.Unlock()
		c.env.Metrics.ObserveSubmission(metrics.OutcomeBlocked, c.pack.Slug)
		c.log.Debug("submission blocked", zap.Int("errors", len(res.VisibleErrors)))
		return res, nil
	}

	record := domain.NewRecord(c.draft, c.date.String(), c.slot, c.pack.Slug)
	c.state = StateSubmitting
	c.submitFailed = false
	c.mu.Unlock()

	if c.env.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.env.SubmitTimeout)
		defer cancel()
	}

	start := time.Now()
	booking, err := c.env.Submitter.Submit(ctx, record)
	c.env.Metrics.ObserveSubmitLatency(time.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.env.now()

	if err != nil {
		c.state = StateEditing
		c.submitFailed = true
		c.env.Metrics.ObserveSubmission(metrics.OutcomeFailed, c.pack.Slug)
		c.log.Warn("submission failed", zap.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	c.state = StateCompleted
	c.booking = booking
	c.env.Metrics.ObserveSubmission(metrics.OutcomeSubmitted, c.pack.Slug)
	c.log.Info("booking submitted", zap.String("date", record.Date), zap.String("time", record.Time))
	return Result{Booking: booking, RedirectURL: c.env.ConfirmationURL}, nil
}

// Summary is the recap block shown next to the form.
type Summary struct {
	PackName string `json:"pack_name"`
	Duration string `json:"duration"`
	Schedule string `json:"schedule,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

func (c *Controller) summary() Summary {
	s := Summary{PackName: c.pack.Name, Duration: c.pack.Duration}
	if c.date != nil && c.slot != "" {
		s.Schedule = calendar.LongLabel(*c.date) + ", " + c.slot
	}
	if c.draft.Address.Street != "" && c.draft.Address.City != "" {
		s.Address = c.draft.Address.Street + ", " + c.draft.Address.City
	}
	return s
}

// Snapshot is a consistent read of the whole session for rendering.
type Snapshot struct {
	ID               string                 `json:"id"`
	State            State                  `json:"state"`
	Pack             domain.Pack            `json:"pack"`
	ShowCompany      bool                   `json:"show_company"`
	Draft            domain.Draft           `json:"draft"`
	Date             *calendar.Date         `json:"date,omitempty"`
	Time             string                 `json:"time,omitempty"`
	TimeSlots        []string               `json:"time_slots"`
	Touched          []domain.Field         `json:"touched"`
	Errors           validation.FieldErrors `json:"errors"`
	Complete         bool                   `json:"complete"`
	SubmissionFailed bool                   `json:"submission_failed"`
	Summary          Summary                `json:"summary"`
	Booking          *domain.Booking        `json:"booking,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	var date *calendar.Date
	if c.date != nil {
		d := *c.date
		date = &d
	}
	return Snapshot{
		ID:               c.id,
		State:            c.state,
		Pack:             c.pack,
		ShowCompany:      c.showCompany,
		Draft:            c.draft,
		Date:             date,
		Time:             c.slot,
		TimeSlots:        append([]string(nil), c.env.TimeSlots...),
		Touched:          c.touched.Fields(),
		Errors:           c.touched.Filter(c.errs),
		Complete:         validation.IsComplete(c.draft, c.date, c.slot),
		SubmissionFailed: c.submitFailed,
		Summary:          c.summary(),
		Booking:          c.booking,
	}
}

func (c *Controller) idleSince() (time.Time, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive, c.state
}

func (c *Controller) revalidate() {
	c.errs = validation.Validate(c.draft)
}

func (c *Controller) copyErrors() validation.FieldErrors {
	out := make(validation.FieldErrors, len(c.errs))
	for f, msg := range c.errs {
		out[f] = msg
	}
	return out
}
