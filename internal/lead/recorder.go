// Package lead captures abandoned-checkout contact details in the
// backend CRM. Saves are debounced and fully best-effort: a checkout
// must never stall or fail because lead capture is slow or down.
package lead

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/domain"
	"github.com/asifratul/dokan/internal/telemetry"
)

const (
	// DefaultDebounce is how long a recorder waits after the last
	// observed form change before saving.
	DefaultDebounce = 1500 * time.Millisecond

	// DefaultMinPhoneLen is the minimum digits a phone field must hold
	// before a snapshot is worth capturing.
	DefaultMinPhoneLen = 11

	saveTimeout = 10 * time.Second
)

// Recorder debounces form snapshots for one checkout session and writes
// them to the backend as a lead. The first successful save establishes
// the lead id; later saves update the same lead in place.
type Recorder struct {
	client      backend.Client
	logger      *slog.Logger
	debounce    time.Duration
	minPhoneLen int

	mu       sync.Mutex
	timer    *time.Timer
	pending  *domain.LeadSnapshot
	leadID   string
	saveSeq  int
	inFlight bool
	closed   bool
}

// Config carries the recorder's tunables. Zero values fall back to the
// package defaults.
type Config struct {
	Debounce    time.Duration
	MinPhoneLen int
}

func NewRecorder(client backend.Client, logger *slog.Logger, cfg Config) *Recorder {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MinPhoneLen <= 0 {
		cfg.MinPhoneLen = DefaultMinPhoneLen
	}
	return &Recorder{
		client:      client,
		logger:      logger,
		debounce:    cfg.Debounce,
		minPhoneLen: cfg.MinPhoneLen,
	}
}

// LeadID returns the id of the captured lead, or "" if no save has
// succeeded yet.
func (r *Recorder) LeadID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leadID
}

// Observe notes a form change. The save fires only after the form has
// been quiet for the debounce window; every call resets the window.
// Snapshots without a usable phone number are ignored.
func (r *Recorder) Observe(snap domain.LeadSnapshot) {
	if len(snap.Form.Phone) < r.minPhoneLen {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.pending = &snap
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, r.flush)
}

// Flush saves any pending snapshot immediately, skipping the remaining
// debounce window. Used when the session is about to submit an order
// and the final form state should be on the lead.
func (r *Recorder) Flush() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.flush()
}

func (r *Recorder) flush() {
	r.mu.Lock()
	r.timer = nil
	if r.closed || r.pending == nil || r.inFlight {
		r.mu.Unlock()
		return
	}
	snap := *r.pending
	r.pending = nil
	leadID := r.leadID
	r.saveSeq++
	seq := r.saveSeq
	r.inFlight = true
	r.mu.Unlock()

	go r.save(seq, leadID, snap)
}

// save runs off the request path. Errors are logged and swallowed.
func (r *Recorder) save(seq int, leadID string, snap domain.LeadSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	var err error
	var newID string
	if leadID == "" {
		newID, err = r.client.CaptureLead(ctx, snap)
	} else {
		err = r.client.UpdateLead(ctx, leadID, snap)
	}

	captured := false
	r.mu.Lock()
	r.inFlight = false
	if err == nil && newID != "" && r.leadID == "" {
		r.leadID = newID
		captured = true
	}
	// A newer snapshot arrived while this save was in flight; let the
	// debounce fire again so the lead reflects the latest form.
	if r.pending != nil && r.timer == nil && !r.closed {
		r.timer = time.AfterFunc(r.debounce, r.flush)
	}
	r.mu.Unlock()

	if captured && telemetry.Business != nil {
		telemetry.Business.LeadsCaptured.WithLabelValues().Inc()
	}

	if err != nil {
		r.logger.Warn("lead save failed",
			slog.Int("attempt", seq),
			slog.String("lead_id", leadID),
			slog.String("error", err.Error()))
		return
	}
	r.logger.Debug("lead saved",
		slog.Int("attempt", seq),
		slog.String("lead_id", r.LeadID()))
}

// Convert marks the captured lead as converted to the given order.
// Best-effort: failures are logged, never returned.
func (r *Recorder) Convert(ctx context.Context, orderID string) {
	r.mu.Lock()
	leadID := r.leadID
	r.mu.Unlock()
	if leadID == "" {
		return
	}

	if err := r.client.ConvertLead(ctx, leadID, orderID); err != nil {
		r.logger.Warn("lead conversion failed",
			slog.String("lead_id", leadID),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()))
		return
	}
	r.logger.Info("lead converted",
		slog.String("lead_id", leadID),
		slog.String("order_id", orderID))
}

// Close stops the debounce timer and drops any unsaved snapshot.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = nil
}
