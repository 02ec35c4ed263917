// Package access holds the route access policy: a pure decision over the
// request path and credential presence, evaluated before any handler runs.
package access

import "strings"

type Decision int

const (
	Allow Decision = iota
	RedirectToSignIn
)

func (d Decision) String() string {
	if d == RedirectToSignIn {
		return "redirect-to-sign-in"
	}
	return "allow"
}

// Public paths are allowed with or without a credential.
var publicPrefixes = []string{
	"/auth",
	"/products",
	"/api/auth",
}

// Protected prefixes require a credential. The admin prefix is gated on
// authentication only; the caller's role is not consulted here.
var protectedPrefixes = []string{
	"/dashboard",
	"/admin",
	"/cart",
	"/checkout",
	"/orders",
}

// Decide applies the rules in order, first match wins: public allow-list,
// then protected prefixes, then default-open for everything else.
func Decide(path string, hasCredential bool) Decision {
	if path == "/" {
		return Allow
	}
	for _, p := range publicPrefixes {
		if matchesPrefix(path, p) {
			return Allow
		}
	}
	for _, p := range protectedPrefixes {
		if matchesPrefix(path, p) {
			if hasCredential {
				return Allow
			}
			return RedirectToSignIn
		}
	}
	return Allow
}

func matchesPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
