package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rkotak/sectorscan/internal/config"
	"github.com/rkotak/sectorscan/internal/data"
	httpserver "github.com/rkotak/sectorscan/internal/interfaces/http"
	"github.com/rkotak/sectorscan/internal/metrics"
	"github.com/rkotak/sectorscan/internal/scan"
	"github.com/rkotak/sectorscan/internal/scoring"
	"github.com/rkotak/sectorscan/internal/universe"
)

const (
	appName = "sectorscan"
	version = "v1.2.0"
)

func main() {
	var (
		configPath string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "NSE sector momentum and reversal scanner",
		Version: version,
		Long: `sectorscan ranks NSE sector indices by pre-computed technical
indicators: tie-aware fractional ranks per indicator, weighted aggregation,
and a 10-to-1 score scale. Reversal mode gates candidates on oversold
conditions before ranking.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			return setupLogging(cfg.Logging)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (trace|debug|info|warn|error)")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one scan over the latest snapshot group",
		Long:  "Rank the latest snapshot group in momentum or reversal mode and print the results as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, configPath)
		},
	}
	scanCmd.Flags().String("mode", "momentum", "Scan mode (momentum|reversal)")
	scanCmd.Flags().String("snapshots", "snapshots.yaml", "Path to snapshot YAML file")
	scanCmd.Flags().Int("top", 0, "Limit output to the top N entities (0 = all)")
	scanCmd.Flags().Bool("show-excluded", false, "Include excluded entities and their reasons")

	trendCmd := &cobra.Command{
		Use:   "trend",
		Short: "Recompute scores across every historical snapshot",
		Long:  "Evaluate each snapshot group independently and print per-entity score series, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrend(cmd, configPath)
		},
	}
	trendCmd.Flags().String("mode", "momentum", "Scan mode (momentum|reversal)")
	trendCmd.Flags().String("snapshots", "snapshots.yaml", "Path to snapshot YAML file")
	trendCmd.Flags().Int("top", 0, "Print the top N per snapshot instead of full series")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only HTTP API",
		Long:  "Serve health, metrics, universe, scan, and trend endpoints on the configured local address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	serveCmd.Flags().String("snapshots", "snapshots.yaml", "Path to snapshot YAML file")

	universeCmd := &cobra.Command{
		Use:   "universe",
		Short: "List the registered sector universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(map[string]interface{}{
				"benchmark": universe.Benchmark(),
				"sectors":   universe.RankableSectors(),
			})
		},
	}

	rootCmd.AddCommand(scanCmd, trendCmd, serveCmd, universeCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogging(cfg config.LoggingConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	console := cfg.Format == "console" ||
		(cfg.Format == "auto" && term.IsTerminal(int(os.Stderr.Fd())))
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}

func buildAnalyzer(configPath string) (*scan.Analyzer, *metrics.Collector, *config.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	scanCfg, err := cfg.ScanConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	collector := metrics.NewCollector()
	return scan.NewAnalyzer(scanCfg, collector), collector, cfg, nil
}

func runScan(cmd *cobra.Command, configPath string) error {
	mode, err := flagMode(cmd)
	if err != nil {
		return err
	}
	analyzer, _, _, err := buildAnalyzer(configPath)
	if err != nil {
		return err
	}

	snapshotPath, _ := cmd.Flags().GetString("snapshots")
	provider := data.NewFileProvider(snapshotPath)
	snaps, err := provider.Latest(cmd.Context())
	if err != nil {
		return err
	}

	var group *scan.GroupResult
	if mode == scoring.Reversal {
		group, err = analyzer.Reversal(snaps)
	} else {
		group, err = analyzer.Momentum(snaps)
	}
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		group.Results = group.TopN(top)
	}
	if show, _ := cmd.Flags().GetBool("show-excluded"); !show {
		group.Excluded = nil
	}

	log.Info().
		Str("mode", mode.String()).
		Int("ranked", len(group.Results)).
		Msg("scan complete")
	return printJSON(group)
}

func runTrend(cmd *cobra.Command, configPath string) error {
	mode, err := flagMode(cmd)
	if err != nil {
		return err
	}
	analyzer, _, _, err := buildAnalyzer(configPath)
	if err != nil {
		return err
	}

	snapshotPath, _ := cmd.Flags().GetString("snapshots")
	history, err := data.NewFileProvider(snapshotPath).History(cmd.Context())
	if err != nil {
		return err
	}

	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		tops, err := analyzer.HistoricalTop(cmd.Context(), history, mode, top)
		if err != nil {
			return fmt.Errorf("trend: %w", err)
		}
		return printJSON(map[string]interface{}{"mode": mode.String(), "top": tops})
	}

	series, err := analyzer.Trend(cmd.Context(), history, mode)
	if err != nil {
		return fmt.Errorf("trend: %w", err)
	}
	return printJSON(map[string]interface{}{"mode": mode.String(), "series": series})
}

func runServe(cmd *cobra.Command, configPath string) error {
	analyzer, collector, cfg, err := buildAnalyzer(configPath)
	if err != nil {
		return err
	}

	snapshotPath, _ := cmd.Flags().GetString("snapshots")
	provider := data.NewFileProvider(snapshotPath)

	srv, err := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, analyzer, provider, collector)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func flagMode(cmd *cobra.Command) (scoring.Mode, error) {
	name, _ := cmd.Flags().GetString("mode")
	mode, ok := scoring.ParseMode(name)
	if !ok {
		return 0, fmt.Errorf("unknown scan mode %q", name)
	}
	return mode, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
