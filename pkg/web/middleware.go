package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"productapi/pkg/apperr"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// HeaderAPIKey is the header carrying the shared-secret credential.
const HeaderAPIKey = "x-api-key"

// QueryAPIKey is the fallback query parameter for the credential.
const QueryAPIKey = "api_key"

// RequestIDInjector creates a middleware that injects a request id into the
// context, generating one if the request does not carry one already.
func RequestIDInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StructuredLogger creates a middleware that logs HTTP requests in a structured format.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			// Get request ID from context and use it to create a structured logger
			reqID, _ := GetRequestID(r.Context())
			requestLogger := logger.With("request_id", reqID)

			defer func() {
				requestLogger.Info("Request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes_written", ww.BytesWritten(),
					"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
					"remote_addr", r.RemoteAddr,
					"user_agent", r.UserAgent(),
				)
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// Recoverer is a middleware that recovers from panics and logs them using the provided logger.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					reqID, _ := GetRequestID(r.Context())
					logger.Error("Panic recovered",
						"panic", rvr,
						"request_id", reqID,
					)
					RespondError(w, logger, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// APIKeyAuth gates a route subtree behind a static shared secret. The
// credential is read from the x-api-key header, falling back to the api_key
// query parameter; the header wins when both are present. A missing or
// incorrect credential rejects the request with 401 before it reaches any
// handler.
func APIKeyAuth(apiKey string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(HeaderAPIKey)
			if supplied == "" {
				supplied = r.URL.Query().Get(QueryAPIKey)
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
				RespondAppError(w, logger, apperr.Unauthorized("Unauthorized: invalid or missing API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
