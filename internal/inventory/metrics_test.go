package inventory

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Purchases(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	inv := New(WithMetrics(m))

	require.NoError(t, inv.Add([]StockBook{stockBook(1, 3), stockBook(2, 1)}))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Books))

	require.NoError(t, inv.Buy([]BookCopy{{ISBN: 1, NumCopies: 2}, {ISBN: 2, NumCopies: 1}}))
	require.ErrorIs(t, inv.Buy([]BookCopy{{ISBN: 1, NumCopies: 2}, {ISBN: 2, NumCopies: 1}}), ErrStockUnavailable)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Purchases.WithLabelValues(outcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Purchases.WithLabelValues(outcomeAborted)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CopiesSold))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SaleMisses))

	require.NoError(t, inv.RemoveAll())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Books))
	// add, buy and remove_all
	assert.Equal(t, 3, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.purchaseCommitted(1)
	m.purchaseAborted(1)
	m.setBooks(1)
}
