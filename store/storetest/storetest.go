// Package storetest is a behaviour suite every store.ResultStore must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

// Options describes backend capabilities the suite has to account for.
type Options struct {
	// NativeTTL backends expire keys on their own; Sweep reports 0.
	NativeTTL bool
}

// Run exercises open() against the ResultStore contract. open must return
// an empty store; it is called once per subtest.
func Run(t *testing.T, open func(t *testing.T) store.ResultStore, opts Options) {
	t.Run("round trip keeps concrete result type", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Second)

		rec := store.NewRecord(Liquidation(t), now, time.Hour)
		require.NoError(t, s.Save(ctx, rec))

		got, err := s.Get(ctx, rec.ID, now)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, severance.KindLiquidation, got.Kind)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))

		liq, ok := got.Result.(*severance.LiquidationResult)
		require.True(t, ok, "got %T", got.Result)
		assert.True(t, liq.Total.Equal(decimal.RequireFromString("90358.50")))
		assert.Equal(t, severance.ReasonUnjustifiedDismissal, liq.Reason)
		assert.Len(t, liq.Breakdown, 6)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(context.Background(), "does-not-exist", time.Now())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		rec := store.NewRecord(Severance(t), time.Now(), time.Hour)
		require.NoError(t, s.Save(ctx, rec))
		assert.ErrorIs(t, s.Save(ctx, rec), store.ErrDuplicateID)
	})

	t.Run("expired record reads as expired", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		now := time.Now()
		rec := store.NewRecord(Severance(t), now, time.Hour)
		require.NoError(t, s.Save(ctx, rec))

		_, err := s.Get(ctx, rec.ID, now.Add(2*time.Hour))
		assert.ErrorIs(t, err, store.ErrExpired)
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("sweep removes only expired records", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		now := time.Now()

		short := store.NewRecord(Severance(t), now, time.Minute)
		long := store.NewRecord(Severance(t), now, time.Hour)
		require.NoError(t, s.Save(ctx, short))
		require.NoError(t, s.Save(ctx, long))

		later := now.Add(10 * time.Minute)
		n, err := s.Sweep(ctx, later)
		require.NoError(t, err)
		if opts.NativeTTL {
			assert.Equal(t, 0, n)
		} else {
			assert.Equal(t, 1, n)
		}

		_, err = s.Get(ctx, long.ID, later)
		assert.NoError(t, err)
		_, err = s.Get(ctx, short.ID, later)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

// Severance is the 15000 / 2020-01-15 / 2024-01-15 finiquito.
func Severance(t *testing.T) *severance.SeveranceResult {
	t.Helper()
	res, err := severance.CalculateSeverance(referenceInput())
	require.NoError(t, err)
	return res
}

// Liquidation is the same case as an unjustified dismissal.
func Liquidation(t *testing.T) *severance.LiquidationResult {
	t.Helper()
	res, err := severance.CalculateLiquidation(severance.LiquidationInput{
		TerminationInput: referenceInput(),
		Reason:           severance.ReasonUnjustifiedDismissal,
	})
	require.NoError(t, err)
	return res
}

func referenceInput() severance.TerminationInput {
	return severance.TerminationInput{
		MonthlySalary:   decimal.RequireFromString("15000"),
		HireDate:        severance.NewDate(2020, time.January, 15),
		TerminationDate: severance.NewDate(2024, time.January, 15),
	}
}
