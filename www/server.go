package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/solarsavings-go/config"
	"github.com/angas/solarsavings-go/database"
	"github.com/angas/solarsavings-go/savings"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	store  *savings.Store
	hub    *Hub
	tm     *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, store *savings.Store, cnfg config.AppConfig) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: cnfg.Api,
		db:     db,
		store:  store,
		hub:    NewHub(logger),
		tm:     tm,
	}

	go s.hub.Run()

	m := newMetrics()
	fm := newFilterManager(logger, cnfg.Api.GetSessionKey())
	currency := cnfg.Data.GetCurrency()

	store.OnReload(func(d *savings.Dataset) {
		m.observeDataset(d)
		s.notifyReload(d)
	})
	if d := store.Dataset(); d != nil {
		m.observeDataset(d)
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(cnfg.Api.WwwDir))

	http.Handle("/kpi", logReqMW(m.instrument("/kpi", NewKpiHandler(
		logger.With(slog.String("handler", "kpi")),
		s.store, fm, s.tm, currency))))

	http.Handle("/summary", logReqMW(m.instrument("/summary", NewSummaryHandler(
		logger.With(slog.String("handler", "summary")),
		s.store, fm, s.tm, currency))))

	http.Handle("/breakdown", logReqMW(m.instrument("/breakdown", NewBreakdownHandler(
		logger.With(slog.String("handler", "breakdown")),
		s.store, fm, s.tm, currency))))

	http.Handle("/intervals", logReqMW(m.instrument("/intervals", NewIntervalsHandler(
		logger.With(slog.String("handler", "intervals")),
		s.store, fm, s.tm, currency))))

	http.Handle("/chart", logReqMW(m.instrument("/chart", NewChartHandler(
		logger.With(slog.String("handler", "chart")),
		s.store, fm, currency))))

	http.Handle("/download", logReqMW(m.instrument("/download", NewDownloadHandler(
		logger.With(slog.String("handler", "download")),
		s.store, fm, m, currency))))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db, s.tm)))

	http.Handle("/metrics", metricsHandler())

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.hub, w, r)
	})

	return s
}

func (s *Server) notifyReload(d *savings.Dataset) {
	from, to := d.TimeRange()
	data := struct {
		Intervals int
		From      string
		To        string
		LoadedAt  string
	}{
		Intervals: d.Len(),
		From:      from.Format("2006-01-02 15:04"),
		To:        to.Format("2006-01-02 15:04"),
		LoadedAt:  time.Now().Format("15:04:05"),
	}
	buf, err := s.tm.Execute("reload_notice.html", data)
	if err != nil {
		s.logger.Error("template execution failed", slog.Any("error", err))
		return
	}
	s.hub.Broadcast(buf.Bytes())
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil && err != http.ErrServerClosed {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
