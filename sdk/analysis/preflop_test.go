package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/potlimit/poker"
)

func TestGeneratePreflopTable(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t, WithCache(nil))
	table, err := GeneratePreflopTable(context.Background(), calc, 600)
	require.NoError(t, err)

	require.Len(t, table.Hands, 169)
	combos := 0
	for i, h := range table.Hands {
		combos += h.Combos
		assert.Equal(t, h.Shape.Combos(), h.Combos, h.Class)
		if i > 0 {
			assert.GreaterOrEqual(t, table.Hands[i-1].Equity, h.Equity, "sorted best first")
		}
	}
	assert.Equal(t, TotalCombos, combos)

	aces, ok := table.Lookup("AA")
	require.True(t, ok)
	assert.Equal(t, poker.ShapePair, aces.Shape)
	assert.Equal(t, poker.TierPremium, aces.Tier)
	assert.InDelta(t, 0.85, aces.Equity, 0.06)

	trash, ok := table.Lookup("7h2c")
	require.True(t, ok, "hole cards resolve to their class")
	assert.Equal(t, "72o", trash.Class)
	assert.Less(t, trash.Equity, aces.Equity)

	pct, ok := table.Percentile("AA")
	require.True(t, ok)
	assert.Less(t, pct, 0.05)
	pct, ok = table.Percentile(table.Hands[168].Class)
	require.True(t, ok)
	assert.InDelta(t, 1.0, pct, 1e-9)

	_, ok = table.Lookup("AKx")
	assert.False(t, ok)
	assert.Len(t, table.Top(10), 10)
	assert.Len(t, table.Top(0), 169)
}
