package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/identity"
)

// Authenticator resolves the caller of a request.
// *identity.Verifier is the production implementation.
type Authenticator interface {
	Authenticate(r *http.Request) (domain.User, error)
}

// NewRequireUser returns a middleware that admits only authenticated
// requests. The resolved user is stored with identity.WithUser; anyone else
// is redirected (303) to loginURL with a return_to parameter pointing back
// at the requested page.
func NewRequireUser(auth Authenticator, loginURL string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r)
			if err != nil {
				log.DebugContext(r.Context(), "unauthenticated request", "path", r.URL.Path, "reason", err)
				http.Redirect(w, r, loginRedirect(loginURL, r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
		})
	}
}

// loginRedirect appends return_to to loginURL, keeping any query the login
// URL already carries.
func loginRedirect(loginURL, returnTo string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	q := u.Query()
	q.Set("return_to", returnTo)
	u.RawQuery = q.Encode()
	return u.String()
}
