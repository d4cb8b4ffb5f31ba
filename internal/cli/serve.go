package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/errors"
	"github.com/protviz/protviz/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string
	store storeFlags
}

// newServeCmd creates the serve command, exposing the pipeline over HTTP.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve annotation figures over HTTP",
		Long: `Serve annotation figures over HTTP.

Endpoints:

	GET  /healthz
	GET  /api/v1/proteins/{accession}/figure
	POST /api/v1/figure

The GET endpoint accepts the plot flags as query parameters (format, start,
end, tracks, mode, width, scale, interpro_db, refresh) and responds with the
rendered figure. The POST endpoint accepts the same options as a JSON body.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	opts.store.addFlags(cmd)

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := opts.store.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := pipeline.NewRunner(pipeline.NewSources(store, pipeline.DefaultCacheTTL), store, nil, logger)
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}
}

// server handles HTTP requests by delegating to the pipeline runner.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	if logger == nil {
		logger = log.Default()
	}
	return &server{runner: runner, logger: logger}
}

// routes builds the router with request-ID and recovery middleware.
func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/proteins/{accession}/figure", s.handleFigureGet)
		r.Post("/figure", s.handleFigurePost)
	})

	return r
}

// requestID assigns each request a UUID, echoed in the X-Request-ID header
// and attached to the request logger.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

func (s *server) handleFigureGet(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Accession = chi.URLParam(r, "accession")
	s.respondFigure(w, r, opts)
}

func (s *server) handleFigurePost(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	s.respondFigure(w, r, opts)
}

// respondFigure runs the pipeline and writes the first requested format.
// Run warnings travel in the X-Protviz-Warnings header so clients can
// distinguish a degraded figure from a complete one.
func (s *server) respondFigure(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	logger := loggerFromContext(r.Context())
	opts.Logger = logger
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		logger.Error("pipeline failed", "accession", opts.Accession, "err", err)
		writeError(w, err)
		return
	}
	for _, warn := range result.Warnings {
		logger.Warn(warn, "accession", opts.Accession)
	}

	format := opts.Formats[0]
	if len(result.Warnings) > 0 {
		w.Header().Set("X-Protviz-Warnings", strconv.Itoa(len(result.Warnings)))
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// optionsFromQuery maps the GET query parameters onto pipeline options.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Mode:    q.Get("mode"),
		Refresh: q.Get("refresh") == "true",
	}
	if v := q.Get("tracks"); v != "" {
		opts.Tracks = strings.Split(v, ",")
	}
	if v := q.Get("format"); v != "" {
		opts.Formats = strings.Split(v, ",")
	}
	if v := q.Get("interpro_db"); v != "" {
		opts.InterProDBs = strings.Split(v, ",")
	}

	var err error
	intParam := func(name string) int {
		s := q.Get(name)
		if s == "" || err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(s); err != nil {
			err = errors.New(errors.ErrCodeInvalidInput, "parameter %s: %q is not an integer", name, s)
		}
		return n
	}
	floatParam := func(name string) float64 {
		s := q.Get(name)
		if s == "" || err != nil {
			return 0
		}
		var f float64
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			err = errors.New(errors.ErrCodeInvalidInput, "parameter %s: %q is not a number", name, s)
		}
		return f
	}

	opts.ViewStart = intParam("start")
	opts.ViewEnd = intParam("end")
	opts.Width = floatParam("width")
	opts.Scale = floatParam("scale")
	return opts, err
}

// writeError maps pipeline errors onto HTTP status codes with a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAccession,
		errors.ErrCodeInvalidCoordinate, errors.ErrCodeInvalidWindow,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidTrack:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeProteinNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	}
	if stderrors.Is(err, cache.ErrNotFound) {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetCode(err)),
	})
}
