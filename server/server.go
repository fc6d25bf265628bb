// Package server exposes the Abel transform over HTTP.
//
//	POST /v1/transform  {"profile": [...], "dr": 0.5, "direction": "forward", "shift": -0.35}
//	POST /v1/transform  {"image": [[...], [...]]}
//	GET  /healthz
//
// Fields left out of a request take the server defaults. Exactly one of
// image and profile must be given; the response carries the transform under
// the same key.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hammal/abel/gonumExtensions"
	"github.com/hammal/abel/hansenlaw"
)

const shutdownTimeout = 5 * time.Second

// Request is the body of POST /v1/transform.
type Request struct {
	Image     [][]float64 `json:"image,omitempty"`
	Profile   []float64   `json:"profile,omitempty"`
	Dr        *float64    `json:"dr,omitempty"`
	Direction string      `json:"direction,omitempty"`
	Shift     *float64    `json:"shift,omitempty"`
}

// Response is the body of a successful transform.
type Response struct {
	Image   [][]float64 `json:"image,omitempty"`
	Profile []float64   `json:"profile,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server handles transform requests. It is safe for concurrent use.
type Server struct {
	defaults     hansenlaw.Options
	maxBodyBytes int64
	logger       *log.Logger
	router       chi.Router
}

// New returns a Server applying defaults to the fields a request leaves out
// and rejecting bodies over maxBodyBytes.
func New(defaults hansenlaw.Options, maxBodyBytes int64, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		defaults:     defaults,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.healthz)
	r.Post("/v1/transform", s.transform)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) transform(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	opts, err := s.options(req)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	if (req.Image == nil) == (req.Profile == nil) {
		s.fail(w, r, http.StatusBadRequest, errors.New("exactly one of image and profile is required"))
		return
	}

	var resp Response
	if req.Profile != nil {
		resp.Profile, err = hansenlaw.TransformProfile(req.Profile, opts)
	} else {
		resp.Image, err = transformRows(req.Image, opts)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hansenlaw.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		s.fail(w, r, status, err)
		return
	}
	s.write(w, r, http.StatusOK, resp)
}

func transformRows(rows [][]float64, opts hansenlaw.Options) ([][]float64, error) {
	im, err := gonumExtensions.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hansenlaw.ErrInvalidArgument, err)
	}
	res, err := hansenlaw.Transform(im, opts)
	if err != nil {
		return nil, err
	}
	return gonumExtensions.Rows(res), nil
}

// options merges the request fields over the server defaults.
func (s *Server) options(req Request) (hansenlaw.Options, error) {
	opts := s.defaults
	if req.Dr != nil {
		if *req.Dr < 0 {
			return opts, fmt.Errorf("%w: negative dr %v", hansenlaw.ErrInvalidArgument, *req.Dr)
		}
		opts.Dr = *req.Dr
	}
	if req.Direction != "" {
		d, err := hansenlaw.ParseDirection(req.Direction)
		if err != nil {
			return opts, err
		}
		opts.Direction = d
	}
	if req.Shift != nil {
		opts.Shift = *req.Shift
	}
	return opts, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("transform failed", "id", middleware.GetReqID(r.Context()), "status", status, "err", err)
	s.write(w, r, status, errorResponse{Error: err.Error()})
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "id", middleware.GetReqID(r.Context()), "err", err)
	}
}
