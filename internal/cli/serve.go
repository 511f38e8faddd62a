package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nupull/nupull/pkg/resolve"
)

func newServeCmd() *cobra.Command {
	opts := &commonOptions{}
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency resolution as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, addr)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

type resolveResponse struct {
	RunID    string            `json:"runId"`
	Count    int               `json:"count"`
	Packages []resolvedPackage `json:"packages"`
}

type resolvedPackage struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Title       string `json:"title,omitempty"`
	DownloadURL string `json:"downloadUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func runServe(cmd *cobra.Command, opts *commonOptions, addr string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.load()
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/resolve/{id}", func(w http.ResponseWriter, req *http.Request) {
		runID := uuid.NewString()
		id := chi.URLParam(req, "id")
		q := req.URL.Query()

		reqOpts := *opts
		reqOpts.version = q.Get("version")
		reqOpts.prerelease = q.Get("prerelease") == "true"
		local := cfg
		if fw := q["framework"]; len(fw) > 0 {
			local.Frameworks = fw
		}

		logger.Debug("resolve request", "run_id", runID, "package", id, "version", reqOpts.version)
		sink := func(f string, args ...any) { logger.Debugf(f, args...) }

		set, err := buildClosure(req.Context(), local, id, &reqOpts, sink, nil)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, resolve.ErrNotFound):
				status = http.StatusNotFound
			case errors.Is(err, resolve.ErrInvalidVersion):
				status = http.StatusBadRequest
			}
			logger.Error("resolve failed", "run_id", runID, "package", id, "err", err)
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}

		resp := resolveResponse{RunID: runID, Count: set.Len()}
		for _, p := range set.Packages() {
			resp.Packages = append(resp.Packages, resolvedPackage{
				ID:          p.ID,
				Version:     p.Version,
				Title:       p.Title,
				DownloadURL: p.DownloadURL,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	})

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
