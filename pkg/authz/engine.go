// Package authz evaluates require-rules (valid-user, user lists, group
// lists) for requests that already authenticated, resolving group
// membership through the credential store.
package authz

import (
	"context"
	"fmt"

	"github.com/tanzilli/pgauth/pkg/access"
	"github.com/tanzilli/pgauth/pkg/config"
	"github.com/tanzilli/pgauth/pkg/logging"
	"github.com/tanzilli/pgauth/pkg/store"
)

// Engine authorizes requests for one protected directory.
type Engine struct {
	cfg   *config.Directory
	store *store.Store
}

// New creates an Engine.
func New(cfg *config.Directory, st *store.Store) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("directory config is required")
	}
	if st == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	return &Engine{cfg: cfg, store: st}, nil
}

// Authorize evaluates rules in order against the request. Rules whose
// method set excludes the request's method are skipped. Failed
// non-authoritative rules fall through to the next rule; exhaustion
// declines so another authority can decide.
func (e *Engine) Authorize(ctx context.Context, req *access.Request, rules []Rule) access.Verdict {
	// Only handle rules this directory is configured to resolve.
	if e.cfg.GroupTable == "" && e.cfg.GroupField == "" && e.cfg.GroupUserField == "" {
		return access.Declined()
	}

	if len(rules) == 0 {
		if e.cfg.Authoritative {
			return access.Denied(fmt.Sprintf("user %q denied, no access rules specified", req.Username))
		}
		return access.Declined()
	}

	for _, rule := range rules {
		if !rule.appliesTo(req.Method) {
			continue
		}

		switch rule.Kind {
		case ValidUser:
			// Authentication already passed; any valid user will do.
			return access.Allowed()

		case Users:
			for _, name := range rule.Names {
				if name == req.Username {
					return access.Allowed()
				}
			}
			if e.cfg.Authoritative {
				return access.Denied(fmt.Sprintf("user %q not in required user list", req.Username))
			}

		case Groups:
			member := false
			for _, group := range rule.Names {
				ok, err := e.store.LookupGroup(ctx, group, req.Username)
				if err != nil {
					logging.App.Error("group lookup failed", "user", req.Username, "group", group, "error", err)
					return access.Fault(fmt.Sprintf("group lookup for user %q: %v", req.Username, err))
				}
				if ok {
					member = true
				}
			}
			if member {
				return access.Allowed()
			}
			if e.cfg.Authoritative {
				return access.Denied(fmt.Sprintf("user %q not in right groups", req.Username))
			}
		}
	}

	return access.Declined()
}
