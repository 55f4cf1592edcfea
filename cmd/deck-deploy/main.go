package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amplifier-stories/deck-tools/internal/deploy"
	"github.com/amplifier-stories/deck-tools/internal/message"
	"github.com/amplifier-stories/deck-tools/internal/notify"
)

var debugMode = strings.ToLower(os.Getenv("DECK_DEPLOY_DEBUG")) == "true"

func main() {
	if err := configureLogging(debugMode); err != nil {
		panic(fmt.Errorf("failed to configure logging: %w", err))
	}

	app := &cli.App{
		Name:      "deck-deploy",
		Usage:     "copy generated slide decks to their destination",
		ArgsUsage: "[filename]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "local",
				Aliases: []string{"l"},
				Usage:   "deploy to ~/Downloads instead of the configured destination",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "keep running and deploy decks as they appear",
			},
			&cli.StringFlag{
				Name:  "source",
				Value: "output",
				Usage: "directory containing generated decks",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "deploy.yaml",
				Usage: "deployment config file",
			},
		},
		Action: entrypoint,
	}

	if err := app.Run(reorderArgs(os.Args)); err != nil {
		zap.L().Fatal("uncaught error", zap.Error(err))
	}
}

// reorderArgs hoists known flags ahead of the filename argument. cli stops
// flag parsing at the first positional, but the deploy flags work in any
// position ("deck-deploy a.html --local" must deploy locally).
func reorderArgs(args []string) []string {
	boolFlags := map[string]bool{
		"--local": true, "-l": true,
		"--watch": true, "-w": true,
	}
	valueFlags := map[string]bool{
		"--source": true, "--config": true,
	}

	out := []string{args[0]}
	var positional []string
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case boolFlags[arg]:
			out = append(out, arg)
		case valueFlags[arg]:
			out = append(out, arg)
			if i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		case strings.HasPrefix(arg, "--source=") || strings.HasPrefix(arg, "--config="):
			out = append(out, arg)
		default:
			positional = append(positional, arg)
		}
	}
	return append(out, positional...)
}

func entrypoint(cctx *cli.Context) (err error) {
	opts := deploy.Options{
		SourceDir:  cctx.String("source"),
		ConfigFile: cctx.String("config"),
		Local:      cctx.Bool("local"),
		Filename:   cctx.Args().First(),
	}

	var res deploy.Result
	if res, err = deploy.Run(opts); err != nil {
		return
	}

	for _, name := range res.Files {
		fmt.Printf("deployed %s\n", name)
	}
	fmt.Printf("%d deck(s) -> %s (%s)\n", len(res.Files), res.Destination.Label, res.Destination.Path)

	if res.Notify != nil {
		sendNotification(cctx.Context, res)
	}

	if !cctx.Bool("watch") {
		return
	}
	return watch(cctx.Context, opts, res)
}

func watch(parent context.Context, opts deploy.Options, res deploy.Result) (err error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		zap.L().Info("got signal")
		cancel()
	}()

	fmt.Printf("watching %s for new decks\n", opts.SourceDir)
	return deploy.Watch(ctx, opts, res.Destination, func(name string) {
		fmt.Printf("deployed %s\n", name)
		if res.Notify != nil {
			one := res
			one.Files = []string{name}
			sendNotification(ctx, one)
		}
	})
}

// sendNotification publishes a deploy notification. Failures are logged
// but never fail the deploy; the files are already in place.
func sendNotification(ctx context.Context, res deploy.Result) {
	note := message.NewDeployNotification(res.Files, res.Destination.Label, res.Destination.Path)
	if err := notify.Publish(ctx, res.Notify.URL, res.Notify.Queue, note); err != nil {
		zap.L().Warn("failed to publish deploy notification", zap.Error(err))
		return
	}
	zap.L().Debug("deploy notification published", zap.String("queue", res.Notify.Queue))
}

func configureLogging(debug bool) error {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Development = false
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level.SetLevel(zapcore.WarnLevel)
	}

	cfg.OutputPaths = []string{
		"stderr",
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}
