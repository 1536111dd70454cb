package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/webevents"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/router"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/presentation/api"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/presentation/tui"
)

const serviceName string = "gridops-dashboard"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	controlPort

	backendURL
	backendAnonKey
	redirectTo

	policiesFile
	configurationFile

	verifyURL
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "127.0.0.1",
		controlPort:   "8000",

		backendURL:     "",
		backendAnonKey: "",
		redirectTo:     "",

		policiesFile:      "",
		configurationFile: "/opt/gridops/config/config.yaml",

		verifyURL: "",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	appCfg, err := application.LoadConfiguration(cfgFile)
	cfgFile.Close()
	exitIf(err, logger, "could not parse configuration file")

	var policies io.Reader
	if flags[policiesFile] != "" {
		f, err := os.Open(flags[policiesFile])
		exitIf(err, logger, "unable to open authorization policy file")
		defer f.Close()
		policies = f
	}

	backendCfg := backend.NewConfig(flags[backendURL], flags[backendAnonKey])
	err = backendCfg.Validate()
	exitIf(err, logger, "invalid backend configuration")

	client, err := backend.New(backendCfg)
	exitIf(err, logger, "failed to create backend client")

	feed := backend.NewFeed(backendCfg, client)
	defer feed.Close()

	app, err := application.New(ctx, client, feed, appCfg, policies, flags[redirectTo])
	exitIf(err, logger, "failed to assemble application")

	startDiagnostics(ctx, flags, app, feed)

	// a verification link followed out of band can be handed in on the
	// command line; it signs the user out again with the one-shot banner
	if flags[verifyURL] != "" {
		err = app.Session.ConsumeRedirect(ctx, flags[verifyURL])
		if err != nil {
			logger.Error("failed to consume verification link", "err", err.Error())
		}
	}

	program := tea.NewProgram(tui.NewApp(ctx, app), tea.WithAltScreen())

	_, err = program.Run()
	exitIf(err, logger, "dashboard terminated abnormally")
}

func startDiagnostics(ctx context.Context, flags flagMap, app *application.App, feed *backend.Feed) {
	log := logging.GetFromContext(ctx)

	we := webevents.New()

	feed.Tap(func(ev backend.RowEvent) {
		err := we.Publish(string(ev.Type), ev)
		if err != nil {
			log.Error("failed to rebroadcast change event", "err", err.Error())
		}
	})

	r := api.RegisterHandlers(ctx, router.New(serviceName), app.Session, we)

	addr := flags[listenAddress] + ":" + flags[controlPort]

	go func() {
		err := http.ListenAndServe(addr, r)
		if err != nil {
			log.Error("diagnostics endpoint failed", "addr", addr, "err", err.Error())
		}
	}()
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])

	flags[backendURL] = envOrDef(ctx, "BACKEND_URL", flags[backendURL])
	flags[backendAnonKey] = envOrDef(ctx, "BACKEND_ANON_KEY", flags[backendAnonKey])
	flags[redirectTo] = envOrDef(ctx, "AUTH_REDIRECT_URL", flags[redirectTo])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef(ctx, "CONFIGURATION_FILE", flags[configurationFile])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("config", "application configuration file", apply(configurationFile))
	flag.Func("verify-url", "an email verification link to consume on startup", apply(verifyURL))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
