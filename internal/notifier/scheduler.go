// Package notifier runs the recurring compliance notification cycle.
//
// Each cycle loads candidate documents (expiring within the look-ahead window or
// already lapsed, with a file attached), evaluates them against their effective
// rule and inserts at most one notification per recipient, document and local
// calendar day. A cycle that fails or times out is abandoned; the next tick
// starts fresh.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/compliance"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/lock"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

const (
	DefaultInterval      = 24 * time.Hour
	DefaultTimeout       = 30 * time.Second
	DefaultLookaheadDays = compliance.ExpiringWindowDays

	lockKey = "notifier-cycle"
)

var (
	ErrAlreadyStarted  = errors.New("notifier already started")
	ErrCycleInProgress = errors.New("notification cycle already in progress")
	ErrLockHeld        = errors.New("notification cycle is running on another instance")
)

var tracer = otel.Tracer("github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/notifier")

// CycleResult summarizes one run.
type CycleResult struct {
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	Scanned    int           `json:"scanned"`
	RowErrors  int           `json:"row_errors"`
	Skipped    int           `json:"skipped"`
	Duplicates int           `json:"duplicates"`
	Inserted   int           `json:"inserted"`
	Failed     int           `json:"failed"`
}

// Scheduler owns the notification loop. Exactly one loop runs per Scheduler and
// cycles never overlap; RunOnce lets tests and operators trigger a cycle directly.
type Scheduler struct {
	docs  repository.DocumentRepository
	rules repository.RuleRepository
	notes repository.NotificationRepository

	log     *logging.Logger
	metrics *Metrics
	locker  lock.Locker
	lockTTL time.Duration

	interval      time.Duration
	timeout       time.Duration
	lookaheadDays int
	loc           *time.Location
	now           func() time.Time
	newID         func() string

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the period between cycles.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTimeout bounds each cycle.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLookaheadDays sets how far ahead of expiry documents are picked up.
func WithLookaheadDays(n int) Option {
	return func(s *Scheduler) {
		if n >= 0 {
			s.lookaheadDays = n
		}
	}
}

// WithLocation sets the zone whose calendar days drive dedup.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records cycle metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// WithLocker makes each cycle take a lease so only one replica runs it.
func WithLocker(l lock.Locker, ttl time.Duration) Option {
	return func(s *Scheduler) {
		s.locker = l
		s.lockTTL = ttl
	}
}

// NewScheduler creates a Scheduler with the defaults: 24h interval, 30s timeout,
// 30 day look-ahead, server local time.
func NewScheduler(docs repository.DocumentRepository, rules repository.RuleRepository, notes repository.NotificationRepository, opts ...Option) *Scheduler {
	s := &Scheduler{
		docs:          docs,
		rules:         rules,
		notes:         notes,
		log:           logging.Default(),
		interval:      DefaultInterval,
		timeout:       DefaultTimeout,
		lookaheadDays: DefaultLookaheadDays,
		loc:           time.Local,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.log = s.log.With("notifier")
	if s.lockTTL <= 0 {
		s.lockTTL = s.timeout * 2
	}
	return s
}

// Start runs a cycle immediately and then once per interval until ctx is done or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(ctx)

	s.log.Info("notifier_started", map[string]any{
		"interval_sec": s.interval.Seconds(),
		"timeout_sec":  s.timeout.Seconds(),
	})
	return nil
}

// Stop cancels the loop, including a cycle in flight, and waits for it to exit.
// Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.cancel = nil
	s.mu.Unlock()
	s.log.Info("notifier_stopped", nil)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick runs a cycle and swallows its error; the next tick retries.
func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	// Aborted cycles are logged by RunOnce.
	if _, err := s.RunOnce(ctx); errors.Is(err, ErrLockHeld) || errors.Is(err, ErrCycleInProgress) {
		s.log.Info("notifier_cycle_skipped", map[string]any{"reason": err.Error()})
	}
}

// RunOnce executes one cycle synchronously under the configured timeout.
func (s *Scheduler) RunOnce(ctx context.Context) (CycleResult, error) {
	if !s.running.TryLock() {
		return CycleResult{}, ErrCycleInProgress
	}
	defer s.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.locker != nil {
		release, ok, err := s.locker.TryLock(ctx, lockKey, s.lockTTL)
		switch {
		case err != nil:
			// The per-day unique index still prevents duplicates, so run unlocked.
			s.log.Error("notifier_lock_failed", err, nil)
		case !ok:
			s.metrics.skipped("lock_held")
			return CycleResult{}, ErrLockHeld
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					s.log.Error("notifier_lock_release_failed", err, nil)
				}
			}()
		}
	}

	ctx, span := tracer.Start(ctx, "notifier.cycle")
	defer span.End()

	res, err := s.cycle(ctx)
	res.Duration = s.now().Sub(res.StartedAt)

	span.SetAttributes(
		attribute.Int("notifier.scanned", res.Scanned),
		attribute.Int("notifier.inserted", res.Inserted),
		attribute.Int("notifier.duplicates", res.Duplicates),
		attribute.Int("notifier.failed", res.Failed),
	)
	fields := map[string]any{
		"scanned":     res.Scanned,
		"row_errors":  res.RowErrors,
		"skipped":     res.Skipped,
		"duplicates":  res.Duplicates,
		"inserted":    res.Inserted,
		"failed":      res.Failed,
		"duration_ms": res.Duration.Milliseconds(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.observeCycle("aborted", res.Duration.Seconds())
		s.log.Error("notifier_cycle_aborted", err, fields)
		return res, err
	}
	s.metrics.observeCycle("completed", res.Duration.Seconds())
	s.log.Info("notifier_cycle_completed", fields)
	return res, nil
}

func (s *Scheduler) cycle(ctx context.Context) (CycleResult, error) {
	now := s.now().In(s.loc)
	res := CycleResult{StartedAt: now}

	rules, err := s.rules.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("load rules: %w", err)
	}
	ruleSet := compliance.NewRuleSet(rules)

	until := compliance.AddDays(now, s.lookaheadDays)
	candidates, err := s.docs.ListAlertCandidates(ctx, until, func(err error) {
		res.RowErrors++
		s.metrics.candidate("row_error")
		s.log.Error("notifier_row_skipped", err, nil)
	})
	if err != nil {
		return res, fmt.Errorf("query candidates: %w", err)
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("cycle abandoned: %w", err)
		}
		res.Scanned++
		s.process(ctx, now, ruleSet, c, &res)
	}
	return res, nil
}

func (s *Scheduler) process(ctx context.Context, now time.Time, ruleSet *compliance.RuleSet, c model.AlertCandidate, res *CycleResult) {
	doc := c.Document
	rule := ruleSet.ResolveFor(doc)
	computed := compliance.Evaluate(now, doc, rule)

	a, ok := formatAlert(doc, rule, computed)
	if !ok {
		res.Skipped++
		s.metrics.candidate("skipped")
		return
	}

	fields := map[string]any{
		"document_id":  doc.ID,
		"recipient_id": c.RecipientID,
		"status":       string(computed.Status),
	}

	exists, err := s.notes.ExistsForDay(ctx, c.RecipientID, model.EntityTypeDocument, doc.ID, now)
	if err != nil {
		res.Failed++
		s.metrics.candidate("failed")
		s.log.Error("notifier_dedup_check_failed", err, fields)
		return
	}
	if exists {
		res.Duplicates++
		s.metrics.candidate("duplicate")
		return
	}

	n := &model.Notification{
		ID:         s.newID(),
		UserID:     c.RecipientID,
		Title:      a.Title,
		Message:    a.Message,
		Category:   a.Category,
		EntityType: model.EntityTypeDocument,
		EntityID:   doc.ID,
		Read:       false,
		CreatedAt:  now,
		CreatedOn:  now,
	}
	inserted, err := s.notes.Create(ctx, n)
	switch {
	case err != nil:
		res.Failed++
		s.metrics.candidate("failed")
		s.log.Error("notifier_insert_failed", err, fields)
	case !inserted:
		// Another replica won the race between our check and insert.
		res.Duplicates++
		s.metrics.candidate("duplicate")
	default:
		res.Inserted++
		s.metrics.candidate("inserted")
		s.metrics.created(a.Category)
	}
}
