package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rentreceipt/internal/auth"
	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/secure"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyIdentity  contextKey = "identity"
	contextKeyRequestID contextKey = "request_id"

	headerRequestID = "X-Request-ID"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

// RequestIDMiddleware keeps a sane incoming X-Request-ID or assigns a new one.
func (s *Service) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" || len(requestID) > utils.MaxRequestIDSize || strings.ContainsAny(requestID, " \t\r\n") {
			requestID = utils.RequestID()
		}

		w.Header().Set(headerRequestID, requestID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		elapsed := time.Since(started)
		s.metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Inc()
		s.metrics.RequestDuration.WithLabelValues(r.Method).Observe(elapsed.Seconds())

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": elapsed.Milliseconds(),
			"request_id":  requestIDFromContext(r.Context()),
		}).Info("http request")
	})
}

func (s *Service) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				s.logger.WithField("panic", rec).
					WithField("path", r.URL.Path).
					WithField("request_id", requestIDFromContext(r.Context())).
					Error("recovered from panic")
				s.renderMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (s *Service) SecureHeadersMiddleware() func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         s.config.Environment == "development",
	})

	return secureMiddleware.Handler
}

func (s *Service) CORSMiddleware() func(http.Handler) http.Handler {
	origins := make([]string, 0)
	for _, origin := range strings.Split(s.config.CORSOrigin, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "user-id"},
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// RequireBearer verifies the bearer token and adds the caller identity to
// the request context.
func (s *Service) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := s.logger.WithField("request_id", requestIDFromContext(r.Context()))

		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			entry.WithError(err).Debug("request without bearer token")
			s.metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
			s.renderMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, types.ErrForbidden) {
				entry.WithError(err).Warn("credential lacks required right")
				s.metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				s.renderMessage(w, http.StatusForbidden, "Forbidden")
				return
			}

			entry.WithError(err).Warn("failed to verify bearer token")
			s.metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			s.renderMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		entry.WithField("user_id", identity.UserID).Debug("authenticated user")

		ctx := context.WithValue(r.Context(), contextKeyIdentity, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(contextKeyRequestID).(string)
	return requestID
}
