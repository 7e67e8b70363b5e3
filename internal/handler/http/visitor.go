package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/alexanderdross/V0-Desiree/pkg/logger"
)

// VisitorCookieName is the cookie holding the signed visitor id.
const VisitorCookieName = "sol_visitor"

const visitorCookieMaxAge = 30 * 24 * time.Hour

// VisitorConfig configures the visitor cookie codec.
type VisitorConfig struct {
	HashKey  []byte
	BlockKey []byte // optional; nil signs without encrypting
	Secure   bool
}

// Visitors issues and reads the anonymous visitor cookie that keys a cart slot.
type Visitors struct {
	codec  *securecookie.SecureCookie
	secure bool
	logger *slog.Logger
}

// NewVisitors creates a visitor cookie codec.
func NewVisitors(cfg VisitorConfig, logger *slog.Logger) *Visitors {
	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.MaxAge(int(visitorCookieMaxAge.Seconds()))
	return &Visitors{codec: codec, secure: cfg.Secure, logger: logger}
}

// Middleware resolves the visitor id from the cookie. A missing or tampered
// cookie gets a fresh id, which is written back on the response.
func (v *Visitors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := v.read(r)
		if !ok {
			id = uuid.NewString()
			if err := v.write(w, id); err != nil {
				v.logger.ErrorContext(r.Context(), "failed to encode visitor cookie",
					slog.String("error", err.Error()),
				)
			}
		}

		ctx := logger.WithVisitorID(r.Context(), id)
		ctx = logger.NewContext(ctx, logger.FromContext(ctx).With(slog.String("visitor_id", id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (v *Visitors) read(r *http.Request) (string, bool) {
	c, err := r.Cookie(VisitorCookieName)
	if err != nil {
		return "", false
	}
	var id string
	if err := v.codec.Decode(VisitorCookieName, c.Value, &id); err != nil {
		v.logger.DebugContext(r.Context(), "discarding invalid visitor cookie",
			slog.String("error", err.Error()),
		)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (v *Visitors) write(w http.ResponseWriter, id string) error {
	encoded, err := v.codec.Encode(VisitorCookieName, id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(visitorCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Encode returns the cookie value for id. Used by tests and tooling.
func (v *Visitors) Encode(id string) (string, error) {
	return v.codec.Encode(VisitorCookieName, id)
}

// visitorID returns the visitor id stored by Middleware.
func visitorID(r *http.Request) string {
	return logger.VisitorIDFromContext(r.Context())
}
