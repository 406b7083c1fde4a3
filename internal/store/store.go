// Package store owns the in-memory subscription collection. Every mutation
// writes the whole collection through to a blob store under one key; loading
// falls back to an empty collection when the blob is missing or unreadable.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avaforge-creator/subdrip/internal/core"
	"github.com/avaforge-creator/subdrip/internal/log"
	"github.com/avaforge-creator/subdrip/internal/storage"
)

// DefaultKey is the blob key the collection is stored under.
const DefaultKey = "subdrip.subscriptions"

type Store struct {
	mu     sync.RWMutex
	subs   []core.Subscription
	blobs  storage.BlobStore
	key    string
	logger *log.Logger

	listeners    []listenerEntry
	nextListener int
}

type Option func(*Store)

// WithKey overrides the blob key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New loads the collection from blobs. A missing or undecodable blob yields
// an empty store; the cause is logged, never returned.
func New(ctx context.Context, blobs storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		key:    DefaultKey,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentStore)
	s.subs = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []core.Subscription {
	data, err := s.blobs.Load(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.DebugContext(ctx, "No stored subscriptions, starting empty", log.FieldStorageKey, s.key)
		return nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load subscriptions, starting empty",
			log.NewFields().WithOperation(log.OpLoad).WithStorageKey(s.key).WithError(err).ToSlice()...)
		return nil
	}

	subs, err := Decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored subscriptions are unreadable, starting empty",
			log.NewFields().WithOperation(log.OpLoad).WithStorageKey(s.key).WithError(err).ToSlice()...)
		return nil
	}

	s.logger.DebugContext(ctx, "Loaded subscriptions", log.FieldCount, len(subs))
	return subs
}

// persist writes the current collection. Callers hold the write lock.
// Failures leave the blob at its last successful write.
func (s *Store) persist(ctx context.Context, op string) {
	data, err := Encode(s.subs)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to encode subscriptions, skipping write",
			log.NewFields().WithOperation(op).WithStorageKey(s.key).WithError(err).ToSlice()...)
		return
	}
	if err := s.blobs.Save(ctx, s.key, data); err != nil {
		s.logger.WarnContext(ctx, "Failed to save subscriptions",
			log.NewFields().WithOperation(op).WithStorageKey(s.key).WithError(err).ToSlice()...)
		return
	}
	s.logger.DebugContext(ctx, "Saved subscriptions", log.FieldOperation, op, log.FieldCount, len(s.subs), log.FieldBytes, len(data))
}

// Add appends sub. Ids are not checked for uniqueness; callers create
// records with core.NewSubscription, which assigns a fresh one.
func (s *Store) Add(ctx context.Context, sub core.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.persist(ctx, log.OpAdd)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Subscription added",
		log.NewFields().WithSubscription(sub.ID.String(), sub.Name, sub.BillingCycle.String(), sub.Category.String()).ToSlice()...)
	s.notify(Event{Op: EventAdded, IDs: []uuid.UUID{sub.ID}})
	return nil
}

// Update replaces the first record with sub's id. Nothing happens when no
// record matches.
func (s *Store) Update(ctx context.Context, sub core.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.indexOf(sub.ID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.subs[idx] = sub
	s.persist(ctx, log.OpUpdate)
	s.mu.Unlock()

	s.notify(Event{Op: EventUpdated, IDs: []uuid.UUID{sub.ID}})
	return nil
}

// Delete removes the first record with the given id and reports whether
// one was found. Nothing is written when no record matches.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.subs = append(s.subs[:idx], s.subs[idx+1:]...)
	s.persist(ctx, log.OpDelete)
	s.mu.Unlock()

	s.notify(Event{Op: EventDeleted, IDs: []uuid.UUID{id}})
	return true
}

// DeleteAt removes the records at the given positions of the current order.
// Repeated positions count once and out-of-range ones are ignored. It
// returns how many records were removed.
func (s *Store) DeleteAt(ctx context.Context, positions ...int) int {
	s.mu.Lock()
	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(s.subs) {
			drop[p] = struct{}{}
		}
	}
	if len(drop) == 0 {
		s.mu.Unlock()
		return 0
	}

	kept := make([]core.Subscription, 0, len(s.subs)-len(drop))
	removed := make([]uuid.UUID, 0, len(drop))
	for i, sub := range s.subs {
		if _, ok := drop[i]; ok {
			removed = append(removed, sub.ID)
			continue
		}
		kept = append(kept, sub)
	}
	s.subs = kept
	s.persist(ctx, log.OpDeleteAt)
	s.mu.Unlock()

	s.notify(Event{Op: EventDeleted, IDs: removed})
	return len(removed)
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, sub := range s.subs {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []core.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

func (s *Store) Get(id uuid.UUID) (core.Subscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.subs[idx], true
	}
	return core.Subscription{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// TotalMonthlySpending sums MonthlyPrice in the base currency.
func (s *Store) TotalMonthlySpending() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, sub := range s.subs {
		total = total.Add(sub.MonthlyPrice())
	}
	return total
}

// TotalYearlySpending sums YearlyPrice in the base currency.
func (s *Store) TotalYearlySpending() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, sub := range s.subs {
		total = total.Add(sub.YearlyPrice())
	}
	return total
}

// SortedByNextPayment orders by next payment date; equal dates keep
// insertion order.
func (s *Store) SortedByNextPayment(now time.Time) []core.Subscription {
	type dated struct {
		sub  core.Subscription
		next core.Date
	}
	all := s.All()
	rows := make([]dated, len(all))
	for i, sub := range all {
		rows[i] = dated{sub: sub, next: sub.NextPaymentDate(now)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].next.Before(rows[j].next.Time)
	})

	out := make([]core.Subscription, len(rows))
	for i, r := range rows {
		out[i] = r.sub
	}
	return out
}

// ForDate returns the records whose next payment, projected from now, falls
// on date.
func (s *Store) ForDate(date core.Date, now time.Time) []core.Subscription {
	var out []core.Subscription
	for _, sub := range s.All() {
		if sub.NextPaymentDate(now).SameDay(date) {
			out = append(out, sub)
		}
	}
	return out
}

// SpendingByCategory sums monthly cost per category. Categories without
// subscriptions are absent.
func (s *Store) SpendingByCategory() map[core.Category]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[core.Category]decimal.Decimal)
	for _, sub := range s.subs {
		out[sub.Category] = out[sub.Category].Add(sub.MonthlyPrice())
	}
	return out
}

// MostExpensive returns the record with the highest monthly cost. The
// earliest inserted wins a tie.
func (s *Store) MostExpensive() (core.Subscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.subs) == 0 {
		return core.Subscription{}, false
	}
	best := s.subs[0]
	for _, sub := range s.subs[1:] {
		if sub.MonthlyPrice().GreaterThan(best.MonthlyPrice()) {
			best = sub
		}
	}
	return best, true
}

// Summary bundles the totals with a category breakdown sorted by amount,
// largest first.
func (s *Store) Summary() core.Summary {
	byCat := s.SpendingByCategory()
	rows := make([]core.CategoryAmount, 0, len(byCat))
	for _, c := range core.AllCategories() {
		if amount, ok := byCat[c]; ok {
			rows = append(rows, core.CategoryAmount{Category: c, Amount: amount})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})

	return core.Summary{
		Count:        s.Len(),
		MonthlyTotal: s.TotalMonthlySpending(),
		YearlyTotal:  s.TotalYearlySpending(),
		ByCategory:   rows,
	}
}
