package eventservices

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jiaming2012/daily-stock-update/src/eventmodels"
)

const quoteSessions = 2

// FetchDailyQuotes asks source for the last two closes of every ticker, one at a
// time, and computes the percentage change between them. Tickers with fewer than
// two sessions are left out. A source error aborts the whole fetch.
func FetchDailyQuotes(ctx context.Context, source ClosingPriceSource, tickers []eventmodels.StockSymbol, now time.Time) (*eventmodels.DailyQuotes, error) {
	tracer := otel.Tracer("FetchDailyQuotes")
	ctx, span := tracer.Start(ctx, "FetchDailyQuotes")
	defer span.End()

	meter := otel.Meter("FetchDailyQuotes")
	omittedCounter, err := meter.Int64Counter("quotes_omitted", metric.WithDescription("tickers left out for insufficient history"))
	if err != nil {
		return nil, fmt.Errorf("FetchDailyQuotes: failed to create counter: %w", err)
	}

	quotes := eventmodels.NewDailyQuotes()

	for _, ticker := range tickers {
		closes, err := source.FetchDailyCloses(ctx, ticker, quoteSessions, now)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("FetchDailyQuotes: failed to fetch closes for %s: %w", ticker, err)
		}

		quote, ok, err := NewStockQuote(ticker, closes)
		if err != nil {
			return nil, fmt.Errorf("FetchDailyQuotes: %w", err)
		}

		if !ok {
			log.WithContext(ctx).Warnf("skipping %s: %d session(s) available, need %d", ticker, len(closes), quoteSessions)
			omittedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("symbol", ticker.String())))
			continue
		}

		quotes.Set(quote)
	}

	span.SetAttributes(attribute.Int("quotes", quotes.Len()))

	return quotes, nil
}

// NewStockQuote builds a quote from closes ordered oldest first, using the last
// two. ok is false when there is not enough usable history.
func NewStockQuote(symbol eventmodels.StockSymbol, closes []float64) (eventmodels.StockQuote, bool, error) {
	if len(closes) < quoteSessions {
		return eventmodels.StockQuote{}, false, nil
	}

	previous := closes[len(closes)-2]
	latest := closes[len(closes)-1]

	if previous <= 0 {
		return eventmodels.StockQuote{}, false, nil
	}

	change := (latest - previous) / previous * 100

	// stats.Round rounds half away from zero, so 100.125 becomes 100.13.
	price, err := stats.Round(latest, 2)
	if err != nil {
		return eventmodels.StockQuote{}, false, fmt.Errorf("NewStockQuote: failed to round price for %s: %w", symbol, err)
	}

	roundedChange, err := stats.Round(change, 2)
	if err != nil {
		return eventmodels.StockQuote{}, false, fmt.Errorf("NewStockQuote: failed to round change for %s: %w", symbol, err)
	}

	if roundedChange == 0 {
		roundedChange = 0
	}

	return eventmodels.StockQuote{
		Symbol:        symbol,
		Price:         price,
		ChangePercent: roundedChange,
	}, true, nil
}
