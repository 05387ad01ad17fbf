package auth

import (
	"net/http"
	"strings"

	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/logger"
)

// Verifier checks a session token
type Verifier interface {
	Verify(token string) (*User, error)
}

// SessionMiddleware attaches the session user when an Authorization header is
// present. Requests without the header continue anonymously; requests with a
// bad token are rejected with 401.
func SessionMiddleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, BearerPrefix)
			if !ok || token == "" {
				reject(w, r, domain.ErrInvalidToken)
				return
			}

			user, err := v.Verify(token)
			if err != nil {
				reject(w, r, err)
				return
			}

			ctx := logger.WithUserID(WithUser(r.Context(), user), user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthUser(r.Context()) == nil {
			logger.FromContext(r.Context()).Debug(LogMsgSessionMissing, "path", r.URL.Path)
			http.Error(w, domain.ErrMsgUnauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func reject(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Warn(LogMsgSessionRejected,
		"path", r.URL.Path,
		"reason", err.Error())
	http.Error(w, domain.ErrMsgUnauthorized, http.StatusUnauthorized)
}
