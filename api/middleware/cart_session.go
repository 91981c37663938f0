package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/cadefab1n/cardapio-backend/pkg/config"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/google/uuid"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession resolves the caller's cart session id from the X-Cart-Session
// header or the session cookie, minting a new id when neither is present.
// The id is echoed back on both so browser and non-browser clients can hold
// onto it.
func CartSession(cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	cookieName := cfg.SessionCookie
	if cookieName == "" {
		cookieName = "cart_session"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if sessionID == "" {
				if cookie, err := r.Cookie(cookieName); err == nil {
					sessionID = strings.TrimSpace(cookie.Value)
				}
			}
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.SnapshotTTL / time.Second),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
