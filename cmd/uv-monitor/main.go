package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uv-monitor/config"
	"uv-monitor/internal/api"
	"uv-monitor/internal/feed"
	"uv-monitor/internal/incidence"
	"uv-monitor/internal/logging"
	"uv-monitor/internal/match"
	"uv-monitor/internal/mqtt"
	"uv-monitor/internal/recommend"
	"uv-monitor/internal/registry"
	"uv-monitor/internal/upstream"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "uv-monitor",
		Short: "UV index monitor",
		Long:  "Aggregates the ARPANSA UV feed, resolves cities to sensor stations, and serves sun-exposure recommendations",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(testCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logging.Setup(level)
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the monitoring service",
		Long:  "Start the feed cache, API server, and MQTT publisher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			reg, err := registry.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open city registry: %w", err)
			}
			defer reg.Close()
			slog.Info("city registry opened", "path", cfg.Database.Path)

			publisher, err := mqtt.NewPublisher(mqtt.PublisherConfig{
				Broker:      cfg.MQTT.Broker,
				ClientID:    cfg.MQTT.ClientID,
				Username:    cfg.MQTT.Username,
				Password:    cfg.MQTT.Password,
				TopicPrefix: cfg.MQTT.TopicPrefix,
				Enabled:     cfg.MQTT.Enabled,
			})
			if err != nil {
				slog.Warn("mqtt connection failed", "err", err)
				publisher, _ = mqtt.NewPublisher(mqtt.PublisherConfig{Enabled: false})
			} else if cfg.MQTT.Enabled {
				slog.Info("mqtt connected", "broker", cfg.MQTT.Broker)
			}
			defer publisher.Close()

			fetcher := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.Timeout)
			cache := feed.NewCache(fetcher.Fetch, cfg.Feed.CacheTTL,
				feed.WithOnRefresh(func(snap *feed.Snapshot) {
					if err := publisher.PublishSnapshot(snap); err != nil {
						slog.Warn("mqtt publish failed", "err", err)
					}
				}),
			)

			table, err := incidence.Load(cfg.Incidence.CSVPath)
			if err != nil {
				slog.Warn("incidence table unavailable", "path", cfg.Incidence.CSVPath, "err", err)
			}

			matcher := match.New(cache, reg)
			engine := newEngine(cfg, table)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			// Preload the feed so the first request is served warm.
			snap := cache.Feed(ctx)
			slog.Info("feed preloaded", "stations", len(snap.Readings), "synthetic", snap.Synthetic)

			var server *api.Server
			if cfg.API.Enabled {
				server = api.NewServer(api.ServerConfig{
					Port:     cfg.API.Port,
					Matcher:  matcher,
					Engine:   engine,
					Registry: reg,
					Cache:    cache,
				})

				go func() {
					if err := server.Start(); err != nil {
						slog.Error("API server error", "err", err)
					}
				}()
			}

			slog.Info("UV Monitor started. Press Ctrl+C to stop.")

			<-sigChan
			slog.Info("shutting down")
			cancel()

			if server != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := server.Stop(shutdownCtx); err != nil {
					slog.Warn("server shutdown error", "err", err)
				}
			}

			return nil
		},
	}
}

func newEngine(cfg *config.Config, table *incidence.Table) *recommend.Engine {
	locator := upstream.NewIPInfoClient(cfg.GeoIP.URL, cfg.GeoIP.Timeout)
	uvClient := upstream.NewOpenUVClient(cfg.OpenUV.URL, cfg.OpenUV.APIKey, cfg.OpenUV.Timeout)

	// A nil table surfaces as "data unavailable" in recommendations.
	var risk recommend.RiskTable
	if table != nil {
		risk = table
	}
	return recommend.New(locator, uvClient, risk)
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the UV feed once",
		Long:  "Retrieve and parse the remote UV feed once, printing the readings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fetcher := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.Timeout)
			readings, err := fetcher.Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch feed: %w", err)
			}

			output, _ := json.MarshalIndent(readings, "", "  ")
			fmt.Println(string(output))

			return nil
		},
	}
}

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test connection to the UV feed",
		Long:  "Fetch the remote feed and report whether it parses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Testing connection to %s...\n", cfg.Feed.URL)

			fetcher := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.Timeout)
			readings, err := fetcher.Fetch(cmd.Context())
			if err != nil {
				fmt.Printf("Connection FAILED: %v\n", err)
				return err
			}

			fmt.Println("Connection SUCCESS!")
			fmt.Printf("\nStations: %d\n", len(readings))
			for i, r := range readings {
				if i >= 5 {
					fmt.Printf("  ... and %d more\n", len(readings)-5)
					break
				}
				fmt.Printf("  %-15s %-5s UV %.1f at %s\n", r.StationID, r.ShortName, r.UVIndex, r.Time)
			}

			return nil
		},
	}
}
