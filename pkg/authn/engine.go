// Package authn implements the authentication engine: resolving the
// stored password for a request (through the cache when enabled),
// verifying the submission against it, and producing a verdict.
package authn

import (
	"context"
	"fmt"

	"github.com/tanzilli/pgauth/pkg/access"
	"github.com/tanzilli/pgauth/pkg/cache"
	"github.com/tanzilli/pgauth/pkg/config"
	"github.com/tanzilli/pgauth/pkg/hashes"
	"github.com/tanzilli/pgauth/pkg/logging"
	"github.com/tanzilli/pgauth/pkg/store"
)

// Engine authenticates requests for one protected directory. Safe for
// concurrent use; the password cache is its only mutable state.
type Engine struct {
	cfg      *config.Directory
	store    *store.Store
	verifier hashes.Verifier
	cache    *cache.PasswordCache
}

// New creates an Engine. The hash scheme is selected from the config
// once, here; a cache is created only when the config enables it.
func New(cfg *config.Directory, st *store.Store) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("directory config is required")
	}
	if st == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	e := &Engine{
		cfg:      cfg,
		store:    st,
		verifier: cfg.Verifier(),
	}
	if cfg.CachePasswords {
		e.cache = cache.New()
	}
	return e, nil
}

// Cache exposes the engine's password cache, nil when caching is off.
func (e *Engine) Cache() *cache.PasswordCache { return e.cache }

// Authenticate runs the per-request state machine and returns the
// verdict for the host to act on.
func (e *Engine) Authenticate(ctx context.Context, req *access.Request) access.Verdict {
	// With no password checking configured at all, leave the request to
	// the next authenticator in line. Group-only setups are legitimate.
	if e.cfg.PasswordTable == "" && e.cfg.PasswordField == "" {
		return access.Declined()
	}

	stored, fromCache, verdict := e.resolveStored(ctx, req)
	if verdict != nil {
		return *verdict
	}

	// Empty stored password: an explicit, logged bypass when the flag
	// allows it, a rejection otherwise.
	if stored == "" && e.cfg.AllowEmptyPassword {
		logging.App.Warn("empty password accepted", "user", req.Username)
		e.logAccess(ctx, req, req.Password)
		return access.Allowed()
	}
	if stored == "" || req.Password == "" {
		return access.Denied(fmt.Sprintf("empty password rejected for user %q", req.Username))
	}

	if err := e.verifier.VerifyPassword(stored, req.Password); err != nil {
		return access.Denied(fmt.Sprintf("user %s: password mismatch", req.Username))
	}

	if e.cache != nil && !fromCache {
		e.cache.Put(req.Username, stored)
	}

	e.logAccess(ctx, req, e.verifier.Transform(stored, req.Password))
	return access.Allowed()
}

// resolveStored finds the stored password for the request, consulting
// the cache first when enabled. A non-nil verdict ends the request.
func (e *Engine) resolveStored(ctx context.Context, req *access.Request) (stored string, fromCache bool, verdict *access.Verdict) {
	if e.cache != nil {
		if v, ok := e.cache.Get(req.Username); ok {
			return v, true, nil
		}
	}

	stored, found, err := e.store.LookupPassword(ctx, req.Username)
	if err != nil {
		// Store and config failures are server-side faults, not denials.
		// Over-long statements land here too and never fall through.
		logging.App.Error("password lookup failed", "user", req.Username, "error", err)
		v := access.Fault(fmt.Sprintf("password lookup for user %q: %v", req.Username, err))
		return "", false, &v
	}
	if !found {
		if e.cfg.Authoritative {
			v := access.Denied(fmt.Sprintf("password for user %q not found", req.Username))
			return "", false, &v
		}
		v := access.Declined()
		return "", false, &v
	}
	return stored, false, nil
}

// logAccess records the attempt in the access-log table. loggedPassword
// is the submission in the scheme's stored form.
func (e *Engine) logAccess(ctx context.Context, req *access.Request, loggedPassword string) {
	e.store.LogAccess(ctx, store.AccessEntry{
		Username:    req.Username,
		Password:    loggedPassword,
		RequestLine: req.RequestLine,
		RemoteAddr:  req.RemoteAddr,
		Time:        req.Time,
		Initial:     req.Initial,
	})
}
