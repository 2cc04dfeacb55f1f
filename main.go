package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/milk9111/cubespawner/config"
	"github.com/milk9111/cubespawner/logger"
	"github.com/milk9111/cubespawner/prefabs"
)

type options struct {
	configFile string
	configDir  string
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "cubespawner",
		Short:         "Drop random shapes into a physics scene on a timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: spawner.yaml in --dir)")
	flags.StringVar(&opts.configDir, "dir", ".", "directory searched for spawner.yaml")
	flags.Bool("debug", false, "show the spawn area and physics shapes")
	flags.Bool("watch", false, "reload prefabs from disk when they change")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file")
	flags.Uint64("seed", 0, "random seed (0 picks one)")
	flags.Bool("infinite", false, "spawn forever instead of stopping at --target")
	flags.Int("target", 0, "number of objects to spawn before stopping")
	flags.Float64("delay", 0, "seconds between spawns")
	flags.String("prefabs", prefabs.Dir, "on-disk prefab directory that shadows the embedded set")

	bind := map[string]string{
		"debug":                "debug",
		"watch":                "watch",
		"log_level":            "log-level",
		"log_file":             "log-file",
		"spawner.seed":         "seed",
		"spawner.infinite":     "infinite",
		"spawner.target_count": "target",
		"spawner.delay":        "delay",
		"prefabs":              "prefabs",
	}
	for key, name := range bind {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

func run(v *viper.Viper, opts *options) error {
	// bootstrap logger until the configured level is known
	boot := logger.NewWithOutput("warn", os.Stderr, false)
	app, err := config.Load(v, opts.configFile, opts.configDir, boot)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(app.LogLevel, app.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	if dir := v.GetString("prefabs"); dir != "" {
		prefabs.Dir = dir
	}

	game, err := NewGame(app, log)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(app.Width, app.Height)
	ebiten.SetWindowTitle("cubespawner")

	log.WithField("delay", app.Spawner.Delay).Info("starting")
	return ebiten.RunGame(game)
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
