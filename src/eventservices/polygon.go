package eventservices

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/daily-stock-update/src/eventmodels"
)

// ClosingPriceSource returns up to sessions daily closes for symbol, oldest first.
type ClosingPriceSource interface {
	FetchDailyCloses(ctx context.Context, symbol eventmodels.StockSymbol, sessions int, now time.Time) ([]float64, error)
}

// polygonLookbackDays is wide enough to span a long weekend plus a market holiday.
const polygonLookbackDays = 10

type PolygonClosingPriceSource struct {
	Client *polygon.Client
}

func NewPolygonClosingPriceSource(apiKey string) *PolygonClosingPriceSource {
	return &PolygonClosingPriceSource{
		Client: polygon.New(apiKey),
	}
}

func (s *PolygonClosingPriceSource) FetchDailyCloses(ctx context.Context, symbol eventmodels.StockSymbol, sessions int, now time.Time) ([]float64, error) {
	if sessions <= 0 {
		return nil, nil
	}

	params := models.ListAggsParams{
		Ticker:     symbol.String(),
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(now.AddDate(0, 0, -polygonLookbackDays)),
		To:         models.Millis(now),
	}.WithOrder(models.Desc).WithAdjusted(true).WithLimit(sessions)

	log.Debugf("fetching %d daily closes for symbol %s", sessions, symbol)

	// newest first
	iter := s.Client.ListAggs(ctx, params)

	var closes []float64
	for iter.Next() {
		closes = append(closes, iter.Item().Close)
		if len(closes) == sessions {
			break
		}
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("FetchDailyCloses: failed to list aggs for %s: %w", symbol, err)
	}

	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}

	return closes, nil
}
