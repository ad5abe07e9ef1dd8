// Package httpgate adapts the gate to a net/http host: it parses Basic
// credentials from the request, runs authentication and authorization,
// and maps the verdict onto HTTP status and challenge semantics.
package httpgate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tanzilli/pgauth/pkg/access"
	"github.com/tanzilli/pgauth/pkg/authn"
	"github.com/tanzilli/pgauth/pkg/authz"
	"github.com/tanzilli/pgauth/pkg/logging"
)

type contextKey struct{}

// Username returns the authenticated username stored in ctx by the
// gate, if any.
func Username(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(contextKey{}).(string)
	return u, ok
}

// Gate wraps handlers with Basic authentication and require-rule
// authorization for one protected directory.
type Gate struct {
	authn *authn.Engine
	authz *authz.Engine
	rules []authz.Rule
	realm string

	// OnDecline handles requests no authority claimed. When nil, a
	// standalone gate is the only authority and declines are challenged
	// like denials.
	OnDecline http.Handler
}

// New creates a Gate. The authorizer may be nil for
// authentication-only setups.
func New(an *authn.Engine, az *authz.Engine, rules []authz.Rule, realm string) (*Gate, error) {
	if an == nil {
		return nil, fmt.Errorf("authentication engine is required")
	}
	if realm == "" {
		realm = "Restricted"
	}
	return &Gate{authn: an, authz: az, rules: rules, realm: realm}, nil
}

// Wrap protects next with the gate.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			g.challenge(w)
			return
		}

		req := &access.Request{
			Username:    username,
			Password:    password,
			Method:      r.Method,
			RequestLine: r.Method + " " + r.URL.RequestURI() + " " + r.Proto,
			RemoteAddr:  r.RemoteAddr,
			Time:        time.Now(),
			Initial:     true,
		}

		verdict := g.authn.Authenticate(r.Context(), req)
		if verdict.Code == access.Allow && g.authz != nil {
			verdict = g.authz.Authorize(r.Context(), req, g.rules)
		}

		switch verdict.Code {
		case access.Allow:
			logging.Access.Info("access granted", "user", username, "method", r.Method, "uri", r.URL.RequestURI(), "remote", r.RemoteAddr)
			ctx := context.WithValue(r.Context(), contextKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))

		case access.Deny:
			logging.Access.Info("access denied", "user", username, "remote", r.RemoteAddr, "reason", verdict.Reason)
			g.challenge(w)

		case access.Decline:
			if g.OnDecline != nil {
				g.OnDecline.ServeHTTP(w, r)
				return
			}
			g.challenge(w)

		case access.Error:
			// Server fault: no challenge, no credential detail leaked.
			logging.App.Error("gate fault", "user", username, "reason", verdict.Reason)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})
}

func (g *Gate) challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", g.realm))
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
