package run

import (
	"fmt"
	"os"

	"github.com/jiaming2012/daily-stock-update/src/eventmodels"
	"github.com/jiaming2012/daily-stock-update/src/eventservices"
	"github.com/jiaming2012/daily-stock-update/src/stockimage"
	"github.com/jiaming2012/daily-stock-update/src/utils"
)

// DefaultTickers fill the ten tiles in this order.
var DefaultTickers = []string{"AAPL", "NVDA", "MSFT", "AMD", "TSM", "AMZN", "GOOG", "META", "TSLA", "QQQ"}

type Config struct {
	Tickers       []eventmodels.StockSymbol
	PolygonAPIKey string
	Cloudinary    eventservices.CloudinaryCredentials
	FontPath      string
	LogoDir       string
	OutDir        string
}

// LoadConfig reads credentials from the environment. TICKERS_FILE, when set,
// points at a YAML ticker list that replaces DefaultTickers.
func LoadConfig() (Config, error) {
	env, err := utils.RequireEnv("CLOUD_NAME", "API_KEY", "API_SECRET", "POLYGON_API_KEY")
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}

	tickers := DefaultTickers
	if path := os.Getenv("TICKERS_FILE"); path != "" {
		tickers, err = utils.LoadTickersFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("LoadConfig: %w", err)
		}
	}

	return Config{
		Tickers:       eventmodels.NewStockSymbols(tickers),
		PolygonAPIKey: env["POLYGON_API_KEY"],
		Cloudinary: eventservices.CloudinaryCredentials{
			CloudName: env["CLOUD_NAME"],
			APIKey:    env["API_KEY"],
			APISecret: env["API_SECRET"],
		},
		FontPath: stockimage.DefaultFontPath,
		LogoDir:  stockimage.DefaultLogoDir,
		OutDir:   stockimage.DefaultOutDir,
	}, nil
}
