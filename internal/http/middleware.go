package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

type Middleware func(http.Handler) http.Handler

// Chain wraps h so the first middleware listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

type paramsKey struct{}

// requestParams are the query flags every route understands.
type requestParams struct {
	DryRun  bool
	Verbose bool
}

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// paramsMiddleware reads ?verbose=true and ?dry_run=true into the request
// context and logs each request with its status and duration.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		params := requestParams{
			DryRun:  q.Get("dry_run") == "true",
			Verbose: q.Get("verbose") == "true",
		}
		if params.Verbose {
			level := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			// Pipeline stages outliving the request log at the normal level.
			defer log.SetLevel(level)
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), paramsKey{}, params)))

		logFn := log.Info
		if rec.status >= http.StatusInternalServerError {
			logFn = log.Error
		}
		logFn("Handled request", "method", r.Method, "path", r.URL.Path, "status", rec.status,
			"dryRun", params.DryRun, "duration_ms", time.Since(start).Milliseconds())
	})
}

// recoverMiddleware answers a handler panic with a 500.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Error("Handler panicked", "method", r.Method, "path", r.URL.Path, "panic", v)
				writeError(w, fmt.Errorf("internal error: %v", v))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func paramsFromContext(r *http.Request) requestParams {
	params, _ := r.Context().Value(paramsKey{}).(requestParams)
	return params
}

func isDryRunFromContext(r *http.Request) bool {
	return paramsFromContext(r).DryRun
}
