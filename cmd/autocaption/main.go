package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saltyorg/autocaption/internal/autocaption"
	"github.com/saltyorg/autocaption/internal/config"
	"github.com/saltyorg/autocaption/internal/logging"
	"github.com/saltyorg/autocaption/internal/manifest"
	"github.com/saltyorg/autocaption/internal/simhost"
	"github.com/saltyorg/autocaption/internal/watch"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	tracksPath string
	langFlag   string
	logFile    string
	verbosity  int
	debounce   time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autocaption",
		Short: "Autocaption - caption track selection harness",
		Long: `Autocaption loads a YAML snapshot of a player's text tracks, attaches the
caption selector to a simulated player and shows which track it activates.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Apply(logging.LevelForVerbosity(verbosity), config.NewLoader(config.EnvSettings{}), logFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&tracksPath, "tracks", "t", "", "YAML track manifest (required)")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "Player language (overrides the manifest, or set AUTOCAPTION_LANG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this rotating file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Select the best caption track once",
		RunE:  runSelect,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run selection every time the manifest changes",
		RunE:  runWatch,
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", 0, "Delay after the last file change before reloading (or set AUTOCAPTION_WATCH_DEBOUNCE)")

	rootCmd.AddCommand(selectCmd, watchCmd)

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("autocaption %s (plugin: %s, commit: %s, built: %s)\n", version, autocaption.Version, commit, date)
		},
	})

	return rootCmd
}

func loadManifest() (*manifest.Manifest, error) {
	if tracksPath == "" {
		return nil, fmt.Errorf("--tracks flag is required")
	}
	m, err := manifest.Load(tracksPath)
	if err != nil {
		return nil, err
	}
	m.Language = resolveLanguage(langFlag, m.Language)
	return m, nil
}

// resolveLanguage picks the flag, then the environment, then the manifest value
func resolveLanguage(flag, fromManifest string) string {
	if flag != "" {
		return flag
	}
	loader := config.NewLoader(config.EnvSettings{})
	return loader.String("lang", fromManifest)
}

func runSelect(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	player := simhost.New(m.Language, false)
	player.Load(m.Source, m.TextTracks())
	plugin := autocaption.Attach(player, m.Options)
	player.MarkReady()
	player.Play()
	defer player.Dispose()

	fmt.Fprintln(cmd.OutOrStdout(), renderSelection(m.Language, player.TextTracks(), plugin.LastSelection()))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchManifest(ctx, cmd.OutOrStdout(), resolveWatchConfig(debounce))
}

// resolveWatchConfig applies the --debounce flag over environment settings
func resolveWatchConfig(flagDebounce time.Duration) *config.WatchConfig {
	cfg := config.LoadWatchConfig(config.NewLoader(config.EnvSettings{}))
	if flagDebounce > 0 {
		cfg.Debounce = flagDebounce
	}
	return cfg
}

// watchManifest selects once, then again for every manifest change until ctx is done.
// Each reload is loaded as a new source on a per-source player.
func watchManifest(ctx context.Context, out io.Writer, cfg *config.WatchConfig) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	player := simhost.New(m.Language, true)
	plugin := autocaption.Attach(player, m.Options)
	player.MarkReady()
	defer player.Dispose()

	play := func(m *manifest.Manifest) {
		player.SetLanguage(m.Language)
		player.Load(m.Source, m.TextTracks())
		player.Play()
		fmt.Fprintln(out, renderSelection(m.Language, player.TextTracks(), plugin.LastSelection()))
	}
	play(m)

	watcher, err := watch.New(tracksPath, cfg, func() {
		reloaded, err := loadManifest()
		if err != nil {
			log.Warn().Err(err).Str("path", tracksPath).Msg("Failed to reload track manifest")
			return
		}
		log.Info().Str("source", reloaded.Source).Msg("Track manifest changed")
		play(reloaded)
	})
	if err != nil {
		return fmt.Errorf("failed to create manifest watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return err
	}

	<-ctx.Done()
	log.Info().Msg("Stopping manifest watch")

	watcher.Stop()
	plugin.Detach()
	return nil
}
