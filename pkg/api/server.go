package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/imbecility/yt-webdl/pkg/flash"
	"github.com/imbecility/yt-webdl/pkg/gateway"
	"github.com/imbecility/yt-webdl/pkg/utils"
)

const MsgInvalidMethod = "Invalid request method"

var indexTmpl = template.Must(template.New("index").Parse(tmpl))

type Server struct {
	Port    int
	Gateway *gateway.Service
	Flash   flash.Store
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

type homeData struct {
	Messages              []flash.Message
	SupportsMergedFormats bool
}

// Handler returns the routed mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("/download", s.handleDownload)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting web server", "addr", fmt.Sprintf("http://localhost:%d", s.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		Messages:              s.Flash.Pop(w, r),
		SupportsMergedFormats: s.Gateway.SupportsMergedFormats(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		slog.Error("Template execution failed", "err", err, "remote", r.RemoteAddr)
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.Flash.Save(w, flash.Message{Level: flash.LevelError, Text: MsgInvalidMethod})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	reqID := utils.NewRequestID()
	slog.Debug("Download form received", "req", reqID, "remote", r.RemoteAddr)

	out := s.Gateway.Process(r.Context(), r.PostFormValue("url"), reqID)
	if out.Fault != nil {
		// Debug mode: let net/http log the stack trace.
		panic(fmt.Errorf("download %s: %w", reqID, out.Fault))
	}

	s.Flash.Save(w, out.Messages...)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
