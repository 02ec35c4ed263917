package middleware

import (
	"net/http"

	"github.com/marwan-kudus/jabar-onshop/internal/access"
)

const signInPath = "/auth/signin"

// AccessPolicy applies the route access policy to every request. Requests the
// policy rejects are redirected to the sign-in page before any handler runs.
func AccessPolicy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasCredential := GetIdentity(r.Context()) != nil
		if access.Decide(r.URL.Path, hasCredential) == access.RedirectToSignIn {
			http.Redirect(w, r, signInPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
