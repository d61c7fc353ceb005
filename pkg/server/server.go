// Package server exposes a [store.Store] over the venue HTTP contract the
// editor's remote client speaks:
//
//	GET  /club/{venue}              venue object with its tableLayout array
//	POST /club/{venue}/save-layout  body {"tableLayout": {name, tables}}
//	GET  /healthz
//
// Venue ids are case-insensitive and lowercased before they reach the store.
// Errors are JSON objects carrying the structured error code.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/store"
)

// maxBodySize bounds save requests.
const maxBodySize = 1 << 20

// Server serves layouts from a store.
type Server struct {
	store   store.Store
	logger  *log.Logger
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds each request's store call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// New creates a server over st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{store: st, logger: log.Default(), timeout: 10 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/club/{venue}", func(r chi.Router) {
		r.Get("/", s.getLayout)
		r.Post("/save-layout", s.saveLayout)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "404 Page Not Found"))
	})
	return r
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	venue, err := venueParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.store.Fetch(r.Context(), venue)
	if err != nil {
		s.logger.Error("fetch layout", "venue", venue, "err", err)
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "fetch layout for %s", venue))
		return
	}
	writeJSON(w, http.StatusOK, store.NewFetchResponse(venue, doc))
}

func (s *Server) saveLayout(w http.ResponseWriter, r *http.Request) {
	venue, err := venueParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	var req store.SaveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse save request"))
		return
	}
	if req.TableLayout == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "tableLayout is required"))
		return
	}

	doc := store.DecodeDocument(*req.TableLayout, s.logger)
	if doc.Name == "" {
		doc.Name = store.DefaultLayoutName
	}
	for i, t := range doc.Tables.Tables() {
		if err := t.Validate(); err != nil {
			writeError(w, errors.Wrap(errors.GetCode(err), err, "table %d", i))
			return
		}
	}
	doc.UpdatedAt = s.now()

	if err := s.store.Put(r.Context(), venue, doc); err != nil {
		s.logger.Error("save layout", "venue", venue, "err", err)
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "save layout for %s", venue))
		return
	}
	s.logger.Info("layout saved", "venue", venue, "tables", doc.Tables.Len())
	writeJSON(w, http.StatusOK, store.NewFetchResponse(venue, &doc))
}

func venueParam(r *http.Request) (string, error) {
	venue := strings.ToLower(chi.URLParam(r, "venue"))
	if err := errors.ValidateVenueID(venue); err != nil {
		return "", err
	}
	return venue, nil
}

// =============================================================================
// Middleware
// =============================================================================

// requestID tags each request with a UUID, reusing a client-supplied
// X-Request-Id when present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
