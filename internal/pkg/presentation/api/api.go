// Package api is the local diagnostics endpoint: liveness, a state dump
// for troubleshooting and an SSE rebroadcast of the change feed. It binds
// to a control port and never serves dashboard traffic.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/session"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/webevents"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

var tracer = otel.Tracer("keralalt-line/api")

type state struct {
	Version string        `json:"version"`
	Session types.Session `json:"session"`
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, sessions session.Store, we webevents.WebEvents) *chi.Mux {
	log := logging.GetFromContext(ctx)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Get("/debug/state", debugStateHandler(log, sessions))
	router.Mount("/events", we.Server())

	return router
}

func debugStateHandler(log *slog.Logger, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		_, span := tracer.Start(r.Context(), "debug-state")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, _, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, r.Context())

		body, err := json.Marshal(state{
			Version: buildinfo.SourceVersion(),
			Session: sessions.Current(),
		})
		if err != nil {
			requestLogger.Error("unable to marshal state", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
