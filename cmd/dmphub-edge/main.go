package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"os/signal"
	"syscall"
	"time"

	"dmphub/internal/core/locale"
	"dmphub/internal/core/version"
	"dmphub/internal/edge"
	"dmphub/internal/platform/config"
	"dmphub/internal/platform/logger"
	"dmphub/internal/platform/metrics"
	pnet "dmphub/internal/platform/net"
	phttp "dmphub/internal/platform/net/http"
	pmw "dmphub/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	root := config.New()
	edgeCfg := root.Prefix("EDGE_")

	// bring up logging early
	l := logger.Get()
	l.Info().Interface("build", version.Info()).Msg("starting dmphub-edge")

	locales := locale.MustSet(
		edgeCfg.MayString("DEFAULT_LOCALE", "en-US"),
		edgeCfg.MayCSV("LOCALES", []string{"pt-BR"})...,
	)

	// secret source: mounted file wins over env
	var src edge.SecretSource
	if p := edgeCfg.MayString("SECRET_FILE", ""); p != "" {
		src = edge.FileSource{Path: p}
	} else {
		src = edge.EnvSource{Key: "EDGE_JWT_SECRET"}
	}
	secrets := edge.NewSecretProvider(src, edgeCfg.MayDuration("SECRET_TIMEOUT", 5*time.Second))

	// a deployment without the signing secret must die here, not limp along
	// treating every user as anonymous
	if err := secrets.Prime(context.Background()); err != nil {
		l.Panic().Err(err).Msg("signing secret unobtainable")
	}

	refresher := edge.NewHTTPRefresher(
		edgeCfg.MustURL("REFRESH_URL").String(),
		edgeCfg.MayDuration("REFRESH_TIMEOUT", 5*time.Second),
	)

	m := metrics.New(prometheus.DefaultRegisterer)

	gate := edge.New(edge.Options{
		Locales:   locales,
		Secrets:   secrets,
		Refresher: refresher,
		Metrics:   m,
	})

	// downstream internationalized router: the app server behind us
	app := httputil.NewSingleHostReverseProxy(edgeCfg.MustURL("APP_URL"))

	srv := phttp.NewServer(edgeCfg, func(mux *chi.Mux) {
		for _, mw := range pmw.Defaults() {
			mux.Use(mw)
		}
		mux.Use(pmw.RecoverJSON)
		mux.Use(pmw.AccessLog(pmw.AccessLogOptions{Slow: edgeCfg.MayDuration("SLOW", time.Second)}))
		mux.Use(pmw.Heartbeat("/healthz"))
		if origins := edgeCfg.MayCSV("CORS_ORIGINS", nil); len(origins) > 0 {
			mux.Use(pmw.CORS(pmw.CORSOptions{AllowedOrigins: origins, AllowCredentials: true}))
		}

		// static assets and the edge's own endpoints never enter the pipeline
		mux.Use(edge.Skip(gate.Middleware,
			"/healthz",
			"/metrics",
			"/version",
			"/assets/*",
			"/favicon.ico",
		))

		mux.Method(http.MethodGet, "/metrics", promhttp.Handler())
		mux.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			status, body := pnet.OK(version.Info(), pnet.RequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		})
		mux.Handle("/*", app)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		shctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shctx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	}
}
