package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/daily-stock-update/src/eventmodels"
	"github.com/jiaming2012/daily-stock-update/src/eventservices"
)

// Renderer turns quotes into an image file on disk.
type Renderer interface {
	Render(quotes *eventmodels.DailyQuotes) (string, error)
}

// Publisher uploads an image file and returns where it is hosted.
type Publisher interface {
	Publish(ctx context.Context, imagePath string) (string, error)
}

type RunArgs struct {
	Tickers   []eventmodels.StockSymbol
	Source    eventservices.ClosingPriceSource
	Renderer  Renderer
	Publisher Publisher
	Now       time.Time
}

type RunResult struct {
	Quotes    *eventmodels.DailyQuotes
	ImagePath string
	// ResultURL is empty when the upload was rejected.
	ResultURL string
}

// Run fetches, renders and publishes once. Fetch and render errors abort the
// run; a rejected upload is logged and leaves ResultURL empty.
func Run(ctx context.Context, args RunArgs) (RunResult, error) {
	tracer := otel.Tracer("daily_stock_update")
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	quotes, err := eventservices.FetchDailyQuotes(ctx, args.Source, args.Tickers, args.Now)
	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching quotes: %w", err)
	}

	log.WithContext(ctx).Infof("fetched %d of %d quotes\n%s", quotes.Len(), len(args.Tickers), quotes)

	imagePath, err := args.Renderer.Render(quotes)
	if err != nil {
		return RunResult{}, fmt.Errorf("error rendering image: %w", err)
	}

	result := RunResult{
		Quotes:    quotes,
		ImagePath: imagePath,
	}

	url, err := args.Publisher.Publish(ctx, imagePath)
	if err != nil {
		var uploadErr *eventservices.UploadError
		if errors.As(err, &uploadErr) {
			log.WithContext(ctx).Errorf("Upload failed: %v", uploadErr.Body)
			return result, nil
		}

		return result, fmt.Errorf("error uploading image: %w", err)
	}

	log.WithContext(ctx).Infof("Image uploaded successfully: %s", url)

	result.ResultURL = url
	return result, nil
}
