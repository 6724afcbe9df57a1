package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/urfave/cli/v2"

	"github.com/Maia-Everett/ghetto-skype/internal/download"
	"github.com/Maia-Everett/ghetto-skype/internal/host"
	"github.com/Maia-Everett/ghetto-skype/internal/logger"
	"github.com/Maia-Everett/ghetto-skype/internal/platform"
	"github.com/Maia-Everett/ghetto-skype/internal/theme"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.maia-everett.ghetto-skype"
	AppName = "Ghetto Skype"

	DefaultClientURL = "https://web.skype.com"
	DefaultThemesDir = "themes"
)

func main() {
	cliApp := &cli.App{
		Name:    "ghetto-skype",
		Usage:   "desktop host for the Skype web client",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user-data-dir",
				Usage:   "directory holding settings.json (default: the app storage root)",
				EnvVars: []string{"GHETTO_SKYPE_USER_DATA"},
			},
			&cli.StringFlag{
				Name:  "themes-dir",
				Usage: "directory with one sub-directory per theme",
				Value: DefaultThemesDir,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "log as JSON lines",
			},
			&cli.DurationFlag{
				Name:  "start-timeout",
				Usage: "how long an image download may take to start",
				Value: download.DefaultStartTimeout,
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "web client address",
				Value: DefaultClientURL,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "interface language (en, ru)",
				Value: "en",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, ok := logger.ParseLevel(c.String("log-level"))
	if !ok {
		return cli.Exit(fmt.Sprintf("unknown log level %q", c.String("log-level")), 2)
	}
	logOpts := []logger.Option{logger.WithLevel(level)}
	if c.Bool("log-json") {
		logOpts = append(logOpts, logger.WithFormatter(&logger.JSONFormatter{}))
	}
	log := logger.New(logOpts...)
	log.Info("%s v%s starting...", AppName, version)

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(theme.Compact())

	dataDir := c.String("user-data-dir")
	if dataDir == "" {
		dataDir = fyneApp.Storage().RootURI().Path()
	}
	if err := platform.CreateDirectoryIfNotExists(dataDir); err != nil {
		log.Warn("Failed to ensure user data dir %s: %v", dataDir, err)
	}

	h := host.New(fyneApp, log, host.Options{
		UserDataDir:  dataDir,
		ThemesDir:    c.String("themes-dir"),
		ClientURL:    c.String("url"),
		Language:     c.String("lang"),
		StartTimeout: c.Duration("start-timeout"),
	})

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	h.Start(ctx)
	fyneApp.Run()

	log.Info("%s exiting", AppName)
	return nil
}
