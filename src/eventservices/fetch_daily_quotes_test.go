package eventservices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/daily-stock-update/src/eventmodels"
)

type mockClosingPriceSource struct {
	closes map[eventmodels.StockSymbol][]float64
	errs   map[eventmodels.StockSymbol]error
	calls  []eventmodels.StockSymbol
}

func (m *mockClosingPriceSource) FetchDailyCloses(ctx context.Context, symbol eventmodels.StockSymbol, sessions int, now time.Time) ([]float64, error) {
	m.calls = append(m.calls, symbol)

	if err, found := m.errs[symbol]; found {
		return nil, err
	}

	closes := m.closes[symbol]
	if len(closes) > sessions {
		closes = closes[len(closes)-sessions:]
	}

	return closes, nil
}

func TestNewStockQuote(t *testing.T) {
	t.Run("computes change against the previous close", func(t *testing.T) {
		q, ok, err := NewStockQuote("AAPL", []float64{100, 110})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, eventmodels.StockSymbol("AAPL"), q.Symbol)
		assert.Equal(t, 110.0, q.Price)
		assert.Equal(t, 10.0, q.ChangePercent)
	})

	t.Run("rounds price and change to two places", func(t *testing.T) {
		q, ok, err := NewStockQuote("NVDA", []float64{300, 299.123})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 299.12, q.Price)
		assert.Equal(t, -0.29, q.ChangePercent)
	})

	t.Run("exact half cent rounds away from zero", func(t *testing.T) {
		q, ok, err := NewStockQuote("AMD", []float64{100, 100.125})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 100.13, q.Price)
		assert.Equal(t, "$100.13", eventmodels.FormatPrice(q.Price))
	})

	t.Run("uses the last two closes", func(t *testing.T) {
		q, ok, err := NewStockQuote("MSFT", []float64{1, 200, 202})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1.0, q.ChangePercent)
	})

	t.Run("tiny negative change rounds to zero without a sign", func(t *testing.T) {
		q, ok, err := NewStockQuote("QQQ", []float64{1000, 999.99})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0.0, q.ChangePercent)
		assert.Equal(t, "+0.00%", eventmodels.FormatChangePercent(q.ChangePercent))
	})

	t.Run("insufficient history", func(t *testing.T) {
		_, ok, err := NewStockQuote("NEW", []float64{10})
		assert.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = NewStockQuote("NEW", nil)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero previous close", func(t *testing.T) {
		_, ok, err := NewStockQuote("ZERO", []float64{0, 10})
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFetchDailyQuotes(t *testing.T) {
	now := time.Date(2024, 5, 10, 21, 0, 0, 0, time.UTC)

	t.Run("keeps input order and omits short histories", func(t *testing.T) {
		source := &mockClosingPriceSource{
			closes: map[eventmodels.StockSymbol][]float64{
				"AAPL": {100, 100.6},
				"NEW":  {12},
				"NVDA": {1000, 994},
				"MSFT": {400, 400},
			},
		}

		quotes, err := FetchDailyQuotes(context.Background(), source, []eventmodels.StockSymbol{"AAPL", "NEW", "NVDA", "MSFT", "GONE"}, now)
		require.NoError(t, err)

		assert.Equal(t, []eventmodels.StockSymbol{"AAPL", "NEW", "NVDA", "MSFT", "GONE"}, source.calls)

		items := quotes.Items()
		require.Len(t, items, 3)
		assert.Equal(t, eventmodels.StockQuote{Symbol: "AAPL", Price: 100.6, ChangePercent: 0.6}, items[0])
		assert.Equal(t, eventmodels.StockQuote{Symbol: "NVDA", Price: 994, ChangePercent: -0.6}, items[1])
		assert.Equal(t, eventmodels.StockQuote{Symbol: "MSFT", Price: 400, ChangePercent: 0}, items[2])
	})

	t.Run("source error aborts the fetch", func(t *testing.T) {
		source := &mockClosingPriceSource{
			closes: map[eventmodels.StockSymbol][]float64{"AAPL": {100, 101}},
			errs:   map[eventmodels.StockSymbol]error{"NVDA": errors.New("connection reset")},
		}

		quotes, err := FetchDailyQuotes(context.Background(), source, []eventmodels.StockSymbol{"AAPL", "NVDA", "MSFT"}, now)
		assert.Nil(t, quotes)
		assert.ErrorContains(t, err, "NVDA")
		assert.ErrorContains(t, err, "connection reset")
		assert.Equal(t, []eventmodels.StockSymbol{"AAPL", "NVDA"}, source.calls)
	})

	t.Run("no tickers", func(t *testing.T) {
		quotes, err := FetchDailyQuotes(context.Background(), &mockClosingPriceSource{}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, 0, quotes.Len())
	})
}
