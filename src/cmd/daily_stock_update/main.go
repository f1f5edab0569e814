package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/daily-stock-update/src/cmd/daily_stock_update/run"
	"github.com/jiaming2012/daily-stock-update/src/eventservices"
	"github.com/jiaming2012/daily-stock-update/src/logger"
	"github.com/jiaming2012/daily-stock-update/src/stockimage"
	"github.com/jiaming2012/daily-stock-update/src/telemetry"
	"github.com/jiaming2012/daily-stock-update/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/daily_stock_update/main.go",
	Short: "Render today's quotes into a tile image and upload it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := utils.InitEnvironmentVariables("."); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		runID, err := logger.Setup(logger.OptionsFromEnv())
		if err != nil {
			log.Fatalf("error setting up logger: %v", err)
		}

		log.Infof("starting daily stock update, run %s", runID)

		if telemetry.Enabled() {
			otelShutdown, err := telemetry.SetupOTelSDK(ctx, "daily_stock_update")
			if err != nil {
				log.Fatalf("failed to setup otel sdk: %v", err)
			}

			defer func() {
				if err := otelShutdown(context.Background()); err != nil {
					log.Warnf("otel shutdown: %v", err)
				}
			}()
		}

		cfg, err := run.LoadConfig()
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		result, err := run.Run(ctx, run.RunArgs{
			Tickers:   cfg.Tickers,
			Source:    eventservices.NewPolygonClosingPriceSource(cfg.PolygonAPIKey),
			Renderer:  stockimage.NewRenderer(cfg.FontPath, cfg.LogoDir, cfg.OutDir),
			Publisher: eventservices.NewCloudinaryPublisher(cfg.Cloudinary),
			Now:       time.Now(),
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		if result.ResultURL == "" {
			log.Warnf("no result url, image kept at %s", result.ImagePath)
			return
		}

		fmt.Printf("Result URL: %s\n", result.ResultURL)
	},
}

func main() {
	runCmd.Execute()
}
