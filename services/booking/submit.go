package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pinkmint/database"
	"pinkmint/models"
	"pinkmint/services/identity"
)

// SubmissionState is the phase of the current submit attempt.
type SubmissionState string

const (
	StateIdle             SubmissionState = "idle"
	StateAwaitingIdentity SubmissionState = "awaitingIdentity"
	StateSubmitting       SubmissionState = "submitting"
	StateSucceeded        SubmissionState = "succeeded"
	StateFailed           SubmissionState = "failed"
)

// SubmissionStatus is the presentation-layer snapshot of the workflow.
type SubmissionStatus struct {
	State  SubmissionState `json:"state"`
	Reason *WorkflowError  `json:"reason,omitempty"`
	Total  float64         `json:"total"`
}

// Controller drives one draft through the submission workflow:
// idle → awaitingIdentity → submitting → succeeded/failed → idle.
type Controller struct {
	Auth       identity.Bootstrapper
	Repo       database.BookingRepository
	AppID      string
	DisplayFor time.Duration // how long succeeded/failed stays before idle
	Logger     *zap.Logger

	mu         sync.Mutex
	draft      *models.BookingDraft
	state      SubmissionState
	reason     *WorkflowError
	resetTimer *time.Timer
}

// NewController wires a controller around a fresh empty draft.
func NewController(auth identity.Bootstrapper, repo database.BookingRepository, appID string, displayFor time.Duration, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		Auth:       auth,
		Repo:       repo,
		AppID:      appID,
		DisplayFor: displayFor,
		Logger:     logger,
		draft:      NewDraft(),
		state:      StateIdle,
	}
}

// Draft exposes the controller's draft. Callers with concurrent submissions
// must go through Mutate and DraftSnapshot instead.
func (c *Controller) Draft() *models.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Mutate runs fn with exclusive access to the draft. The draft has exactly one
// writer at a time: mutation is rejected while a submission is in flight, and
// fn never overlaps a submission's validation or serialization.
func (c *Controller) Mutate(fn func(d *models.BookingDraft) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAwaitingIdentity || c.state == StateSubmitting {
		return fmt.Errorf("a submission is in flight; draft is locked")
	}
	return fn(c.draft)
}

// DraftSnapshot returns a deep copy of the draft safe to read or serialize
// while a submission may be mutating the original.
func (c *Controller) DraftSnapshot() models.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := *c.draft
	if c.draft.Selection.Package != nil {
		pkg := *c.draft.Selection.Package
		d.Selection.Package = &pkg
	}
	if c.draft.Selection.AddOns != nil {
		addOns := make(map[string]models.AddOn, len(c.draft.Selection.AddOns))
		for name, a := range c.draft.Selection.AddOns {
			addOns[name] = a
		}
		d.Selection.AddOns = addOns
	}
	return d
}

// Status returns the current state, last failure reason, and derived total.
func (c *Controller) Status() SubmissionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SubmissionStatus{State: c.state, Reason: c.reason, Total: c.draft.Total}
}

// InFlight reports whether a submission is currently running.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAwaitingIdentity || c.state == StateSubmitting
}

// Acknowledge dismisses a succeeded/failed status immediately, returning the
// workflow to idle ahead of the timed reset.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toIdleLocked()
}

// Submit runs one submission attempt to completion and returns the resulting
// status. A submit while another attempt is in flight is ignored and returns
// the in-flight status unchanged; the gateway is written at most once per
// attempt and never before identity establishment has resolved.
func (c *Controller) Submit(ctx context.Context) SubmissionStatus {
	c.mu.Lock()
	switch c.state {
	case StateAwaitingIdentity, StateSubmitting:
		status := SubmissionStatus{State: c.state, Reason: c.reason, Total: c.draft.Total}
		c.mu.Unlock()
		return status
	case StateSucceeded, StateFailed:
		// A new submit dismisses the previous outcome immediately.
		c.toIdleLocked()
	}
	c.state = StateAwaitingIdentity
	c.reason = nil
	c.mu.Unlock()

	if _, err := c.Auth.EnsureReady(ctx); err != nil {
		c.Logger.Warn("submission blocked: identity not ready", zap.Error(err))
		return c.fail(NewAuthError(err))
	}

	c.mu.Lock()
	if res := Validate(c.draft); !res.Valid() {
		c.mu.Unlock()
		return c.fail(NewValidationError(res))
	}
	// Read the identity at the moment submitting begins, never a stale copy.
	id := c.Auth.Identity()
	if id == nil {
		c.mu.Unlock()
		return c.fail(NewAuthError(identity.ErrAuthenticationFailed))
	}
	record := buildRecord(c.draft, *id, c.AppID)
	c.state = StateSubmitting
	c.mu.Unlock()

	c.Logger.Info("submitting booking",
		zap.String("bookingID", record.ID),
		zap.String("uid", id.UID),
		zap.String("package", record.PackageName),
		zap.Float64("total", record.TotalPrice))

	if err := c.Repo.CreateBooking(ctx, *id, record); err != nil {
		// Draft is left intact so the user can retry without re-entering data.
		c.Logger.Error("booking write failed", zap.String("bookingID", record.ID), zap.Error(err))
		return c.fail(NewPersistenceError(err))
	}

	c.mu.Lock()
	ResetDraft(c.draft)
	c.state = StateSucceeded
	c.scheduleResetLocked()
	status := SubmissionStatus{State: c.state, Total: c.draft.Total}
	c.mu.Unlock()

	c.Logger.Info("booking submitted", zap.String("bookingID", record.ID))
	return status
}

func (c *Controller) fail(werr *WorkflowError) SubmissionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateFailed
	c.reason = werr
	c.scheduleResetLocked()
	return SubmissionStatus{State: c.state, Reason: c.reason, Total: c.draft.Total}
}

// toIdleLocked clears any outcome and pending timer. Caller holds c.mu.
func (c *Controller) toIdleLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	if c.state == StateSucceeded || c.state == StateFailed {
		c.state = StateIdle
		c.reason = nil
	}
}

// scheduleResetLocked arms the timed return to idle. Caller holds c.mu.
func (c *Controller) scheduleResetLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
	if c.DisplayFor <= 0 {
		return
	}
	c.resetTimer = time.AfterFunc(c.DisplayFor, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.toIdleLocked()
	})
}

// buildRecord serializes a validated draft into the write-once gateway document.
func buildRecord(d *models.BookingDraft, id models.Identity, appID string) *models.BookingRecord {
	addOns := make([]models.AddOn, 0, len(d.Selection.AddOns))
	for _, a := range d.Selection.AddOns {
		addOns = append(addOns, a)
	}
	sort.Slice(addOns, func(i, j int) bool { return addOns[i].Name < addOns[j].Name })

	return &models.BookingRecord{
		ID:            uuid.New().String(),
		AppID:         appID,
		UserID:        id.UID,
		Anonymous:     id.IsAnonymous,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		Zip:           d.Zip,
		HomeType:      d.HomeType,
		FloorType:     d.FloorType,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		SquareFootage: d.SquareFootage,
		Date:          d.Date,
		Time:          d.Time,
		Specifics:     d.Specifics,
		PackageName:   d.Selection.Package.Name,
		PackagePrice:  d.Selection.Package.Price,
		AddOns:        addOns,
		TotalPrice:    d.Total,
		CreatedAt:     time.Now().UTC(),
	}
}
