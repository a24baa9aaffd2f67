package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/elnormous/contenttype"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	model "github.com/stenstromen/bioportal/model"
	"github.com/stenstromen/bioportal/ratelimit"
	"github.com/stenstromen/bioportal/secret"
	"github.com/stenstromen/bioportal/upstream"
)

const (
	sessionName     = "bioportal"
	requestIDHeader = "X-Request-Id"
)

var jsonMediaType = contenttype.NewMediaType("application/json")

type Store interface {
	InsertToken(ctx context.Context, label, sealed string) (int64, error)
	GetToken(ctx context.Context, id int64) (model.Token, error)
	DeleteToken(ctx context.Context, id int64) (int64, error)
}

type Config struct {
	Store    Store
	Sealer   *secret.Sealer
	Upstream *upstream.Client

	// SessionKey signs the cookie that records which token ids this browser saved.
	SessionKey []byte
	// SecureCookie marks the session cookie Secure; set it when served over TLS.
	SecureCookie bool

	// Limiter is optional. Nil disables rate limiting.
	Limiter ratelimit.Limiter

	// LogHandler is optional. Nil discards logs.
	LogHandler slog.Handler
}

type server struct {
	store    Store
	sealer   *secret.Sealer
	upstream *upstream.Client
	cookies  *sessions.CookieStore
	limiter  ratelimit.Limiter
	log      *slog.Logger
}

type ctxKey struct{}

func Handlers(cfg Config) http.Handler {
	h := cfg.LogHandler
	if h == nil {
		h = slog.NewTextHandler(io.Discard, nil)
	}

	cookies := sessions.NewCookieStore(cfg.SessionKey)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	s := &server{
		store:    cfg.Store,
		sealer:   cfg.Sealer,
		upstream: cfg.Upstream,
		cookies:  cookies,
		limiter:  cfg.Limiter,
		log:      slog.New(h),
	}

	r := http.NewServeMux()
	r.HandleFunc("GET /{$}", s.index)
	r.HandleFunc("GET /health", s.health)
	r.HandleFunc("POST "+model.SaveTokenPath, s.saveToken)
	r.HandleFunc("POST "+model.UpdateBioPath, s.updateBio)
	r.HandleFunc("POST "+model.DeleteTokenPath, s.deleteToken)

	return s.withRequestID(s.withRateLimit(r))
}

func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *server) withRateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.limiter.Allow(r.Context(), clientKey(r))
		if err != nil {
			s.logger(r).Error("rate limiter failed", slog.String("err", err.Error()))
		} else if !ok {
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) logger(r *http.Request) *slog.Logger {
	if id, ok := r.Context().Value(ctxKey{}).(string); ok {
		return s.log.With(slog.String("request_id", id))
	}
	return s.log
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// decodeJSON writes 415 for a non-JSON media type and 400 with invalidMsg for
// a body that does not decode into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, invalidMsg string) bool {
	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type")
		return false
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, invalidMsg)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ServiceResponse{OK: false, Error: msg})
}
