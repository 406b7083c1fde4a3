package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaforge-creator/subdrip/internal/core"
	"github.com/avaforge-creator/subdrip/internal/storage"
	"github.com/avaforge-creator/subdrip/internal/storage/memory"
)

var now = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func mk(t *testing.T, name, price string, cycle core.BillingCycle, cat core.Category, start core.Date) core.Subscription {
	t.Helper()
	s, err := core.NewSubscription(core.SubscriptionParams{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		BillingCycle: cycle,
		Category:     cat,
		StartDate:    start,
	})
	require.NoError(t, err)
	return s
}

// fixture returns a store holding Netflix, Gym, Adobe and Spotify in that order.
func fixture(t *testing.T) (*Store, *memory.Store, []core.Subscription) {
	t.Helper()
	ctx := context.Background()
	blobs := memory.New()
	st := New(ctx, blobs)

	subs := []core.Subscription{
		mk(t, "Netflix", "15.99", core.Monthly, core.Entertainment, core.NewDate(2024, 1, 20)),
		mk(t, "Gym", "10", core.Weekly, core.Health, core.NewDate(2024, 3, 11)),
		mk(t, "Adobe", "120", core.Yearly, core.Software, core.NewDate(2023, 6, 1)),
		mk(t, "Spotify", "9.99", core.Monthly, core.Entertainment, core.NewDate(2024, 2, 18)),
	}
	for _, s := range subs {
		require.NoError(t, st.Add(ctx, s))
	}
	return st, blobs, subs
}

func names(subs []core.Subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Name
	}
	return out
}

func TestEmptyStore(t *testing.T) {
	st := New(context.Background(), memory.New())

	assert.True(t, st.TotalMonthlySpending().IsZero())
	assert.True(t, st.TotalYearlySpending().IsZero())
	assert.Empty(t, st.SpendingByCategory())
	assert.NotNil(t, st.SortedByNextPayment(now))
	assert.Empty(t, st.SortedByNextPayment(now))
	assert.Empty(t, st.ForDate(core.NewDate(2024, 3, 15), now))
	_, ok := st.MostExpensive()
	assert.False(t, ok)

	sum := st.Summary()
	assert.Equal(t, 0, sum.Count)
	assert.Empty(t, sum.ByCategory)
}

func TestTotals(t *testing.T) {
	st, _, _ := fixture(t)

	assert.Equal(t, "79.28", st.TotalMonthlySpending().String())
	assert.Equal(t, "951.76", st.TotalYearlySpending().String())
}

func TestSpendingByCategorySumsToTotal(t *testing.T) {
	st, _, _ := fixture(t)

	byCat := st.SpendingByCategory()
	require.Len(t, byCat, 3)
	_, hasUtilities := byCat[core.Utilities]
	assert.False(t, hasUtilities, "categories without subscriptions must be absent")
	assert.Equal(t, "25.98", byCat[core.Entertainment].String())

	sum := decimal.Zero
	for _, v := range byCat {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(st.TotalMonthlySpending()))
}

func TestSortedByNextPaymentIsStable(t *testing.T) {
	st, _, _ := fixture(t)

	// Gym and Spotify are both due 2024-03-18; Gym was added first
	assert.Equal(t, []string{"Gym", "Spotify", "Netflix", "Adobe"}, names(st.SortedByNextPayment(now)))
	// the stored order is untouched
	assert.Equal(t, []string{"Netflix", "Gym", "Adobe", "Spotify"}, names(st.All()))
}

func TestForDate(t *testing.T) {
	st, _, _ := fixture(t)

	assert.Equal(t, []string{"Gym", "Spotify"}, names(st.ForDate(core.NewDate(2024, 3, 18), now)))
	assert.Equal(t, []string{"Adobe"}, names(st.ForDate(core.NewDate(2024, 6, 1), now)))
	assert.Empty(t, st.ForDate(core.NewDate(2024, 3, 19), now))
}

func TestMostExpensiveAndSummary(t *testing.T) {
	st, _, _ := fixture(t)

	top, ok := st.MostExpensive()
	require.True(t, ok)
	assert.Equal(t, "Gym", top.Name)

	sum := st.Summary()
	assert.Equal(t, 4, sum.Count)
	require.Len(t, sum.ByCategory, 3)
	assert.Equal(t, core.Health, sum.ByCategory[0].Category)
	assert.Equal(t, core.Entertainment, sum.ByCategory[1].Category)
	assert.Equal(t, core.Software, sum.ByCategory[2].Category)
	assert.True(t, sum.MonthlyTotal.Equal(st.TotalMonthlySpending()))
}

func TestAddRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	blobs := memory.New()
	st := New(ctx, blobs)

	bad := mk(t, "Bad", "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))
	bad.Price = decimal.NewFromInt(-1)
	assert.ErrorIs(t, st.Add(ctx, bad), core.ErrInvalidPrice)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 0, blobs.Saves())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	st, blobs, subs := fixture(t)
	saves := blobs.Saves()

	changed := subs[1]
	changed.Price = decimal.RequireFromString("12.50")
	changed.Notes = "annual promo"
	require.NoError(t, st.Update(ctx, changed))

	got, ok := st.Get(changed.ID)
	require.True(t, ok)
	assert.True(t, got.Equal(changed))
	assert.Equal(t, saves+1, blobs.Saves())
	assert.Equal(t, "Gym", st.All()[1].Name, "position is kept")

	// unknown id is a silent no-op without a write
	ghost := mk(t, "Ghost", "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))
	require.NoError(t, st.Update(ctx, ghost))
	assert.Equal(t, 4, st.Len())
	assert.Equal(t, saves+1, blobs.Saves())

	invalid := changed
	invalid.Name = ""
	assert.ErrorIs(t, st.Update(ctx, invalid), core.ErrEmptyName)
}

func TestAddThenUpdateIdenticalIsNoOpOnContent(t *testing.T) {
	ctx := context.Background()
	blobs := memory.New()
	st := New(ctx, blobs)

	sub := mk(t, "Netflix", "15.99", core.Monthly, core.Entertainment, core.NewDate(2024, 1, 1))
	require.NoError(t, st.Add(ctx, sub))
	before, err := blobs.Load(ctx, DefaultKey)
	require.NoError(t, err)

	require.NoError(t, st.Update(ctx, sub))
	after, err := blobs.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	reloaded := New(ctx, blobs)
	require.Equal(t, 1, reloaded.Len())
	assert.True(t, reloaded.All()[0].Equal(sub))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st, blobs, subs := fixture(t)
	saves := blobs.Saves()

	assert.True(t, st.Delete(ctx, subs[2].ID))
	assert.Equal(t, []string{"Netflix", "Gym", "Spotify"}, names(st.All()))
	assert.Equal(t, saves+1, blobs.Saves())

	assert.False(t, st.Delete(ctx, uuid.New()))
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, saves+1, blobs.Saves())
}

func TestDeleteAt(t *testing.T) {
	ctx := context.Background()

	t.Run("first of three keeps relative order", func(t *testing.T) {
		st := New(ctx, memory.New())
		for _, n := range []string{"A", "B", "C"} {
			require.NoError(t, st.Add(ctx, mk(t, n, "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))))
		}
		assert.Equal(t, 1, st.DeleteAt(ctx, 0))
		assert.Equal(t, []string{"B", "C"}, names(st.All()))
	})

	t.Run("duplicates and out of range", func(t *testing.T) {
		st, blobs, _ := fixture(t)
		saves := blobs.Saves()
		assert.Equal(t, 2, st.DeleteAt(ctx, 3, 1, 3, -1, 99))
		assert.Equal(t, []string{"Netflix", "Adobe"}, names(st.All()))
		assert.Equal(t, saves+1, blobs.Saves())

		assert.Equal(t, 0, st.DeleteAt(ctx, 7))
		assert.Equal(t, saves+1, blobs.Saves())
	})
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, blobs, subs := fixture(t)

	reloaded := New(ctx, blobs)
	got := reloaded.All()
	require.Len(t, got, len(subs))
	for i := range subs {
		assert.Truef(t, got[i].Equal(subs[i]), "record %d differs: %+v vs %+v", i, got[i], subs[i])
	}
	assert.Equal(t, st.TotalYearlySpending().String(), reloaded.TotalYearlySpending().String())
}

func TestCustomKey(t *testing.T) {
	ctx := context.Background()
	blobs := memory.New()
	st := New(ctx, blobs, WithKey("alt.key"))
	require.NoError(t, st.Add(ctx, mk(t, "A", "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))))

	_, err := blobs.Load(ctx, DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = blobs.Load(ctx, "alt.key")
	assert.NoError(t, err)
}

func TestDecodeOrEmpty(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"garbage":       "not json at all",
		"wrong shape":   `{"id": "x"}`,
		"unknown cycle": `[{"id":"6f1c5e2a-2b7a-4a5e-9c55-3f1a8c7e4b10","name":"A","price":1,"billingCycle":"Daily","category":"Other","iconName":"","startDate":"2024-01-01","colorHex":"","notes":""}]`,
		"bad price":     `[{"id":"6f1c5e2a-2b7a-4a5e-9c55-3f1a8c7e4b10","name":"A","price":-3,"billingCycle":"Weekly","category":"Other","iconName":"","startDate":"2024-01-01","colorHex":"","notes":""}]`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			blobs := memory.NewWithData(map[string][]byte{DefaultKey: []byte(blob)})
			st := New(ctx, blobs)
			assert.Equal(t, 0, st.Len())
		})
	}
}

func TestUnmatchedDeleteLeavesUnreadableBlobAlone(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewWithData(map[string][]byte{DefaultKey: []byte("not json at all")})
	st := New(ctx, blobs)
	require.Equal(t, 0, st.Len())

	assert.False(t, st.Delete(ctx, uuid.New()))
	assert.Equal(t, 0, st.DeleteAt(ctx, 0))
	assert.Equal(t, 0, blobs.Saves())
	raw, err := blobs.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "not json at all", string(raw))

	// the first real mutation replaces it
	require.NoError(t, st.Add(ctx, mk(t, "A", "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))))
	reloaded := New(ctx, blobs)
	assert.Equal(t, 1, reloaded.Len())
}

type failingBlobs struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingBlobs) Load(context.Context, string) ([]byte, error) { return nil, f.loadErr }

func (f *failingBlobs) Save(context.Context, string, []byte) error {
	f.saves++
	return f.saveErr
}

func TestPersistenceFailuresAreAbsorbed(t *testing.T) {
	ctx := context.Background()
	blobs := &failingBlobs{loadErr: errors.New("disk gone"), saveErr: errors.New("read-only")}
	st := New(ctx, blobs)
	assert.Equal(t, 0, st.Len())

	sub := mk(t, "A", "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))
	require.NoError(t, st.Add(ctx, sub))
	assert.Equal(t, 1, st.Len(), "in-memory state survives a failed write")
	assert.Equal(t, 1, blobs.saves)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	st := New(ctx, memory.New())

	var events []Event
	unsubscribe := st.Subscribe(func(ev Event) { events = append(events, ev) })

	a := mk(t, "A", "1", core.Monthly, core.Other, core.NewDate(2024, 1, 1))
	b := mk(t, "B", "2", core.Monthly, core.Other, core.NewDate(2024, 1, 1))
	require.NoError(t, st.Add(ctx, a))
	require.NoError(t, st.Add(ctx, b))
	a.Notes = "x"
	require.NoError(t, st.Update(ctx, a))
	st.DeleteAt(ctx, 0, 1)

	require.Len(t, events, 4)
	assert.Equal(t, EventAdded, events[0].Op)
	assert.Equal(t, EventUpdated, events[2].Op)
	assert.Equal(t, Event{Op: EventDeleted, IDs: []uuid.UUID{a.ID, b.ID}}, events[3])

	unsubscribe()
	require.NoError(t, st.Add(ctx, a))
	assert.Len(t, events, 4)
}
