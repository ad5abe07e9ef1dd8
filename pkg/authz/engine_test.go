package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tanzilli/pgauth/pkg/access"
	"github.com/tanzilli/pgauth/pkg/config"
	"github.com/tanzilli/pgauth/pkg/store"
)

func groupConfig() *config.Directory {
	d := config.Defaults()
	d.GroupTable = "usergroups"
	d.GroupField = "grp"
	d.GroupUserField = "uid"
	return d
}

func request(user, method string) *access.Request {
	return &access.Request{
		Username: user,
		Method:   method,
		Time:     time.Now(),
		Initial:  true,
	}
}

// newEngine wires an engine whose store reports the given user→groups
// memberships.
func newEngine(t *testing.T, cfg *config.Directory, memberships map[string][]string) (*Engine, *store.MemoryExecutor) {
	t.Helper()
	rows := make(map[string]string)
	for user, groups := range memberships {
		for _, g := range groups {
			stmt := "select grp from usergroups where uid='" + user + "' and grp='" + g + "' "
			rows[stmt] = g
		}
	}
	exec := store.NewMemoryExecutor(rows)
	st, err := store.New(cfg, exec)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	engine, err := New(cfg, st)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	return engine, exec
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("Declines when group lookup unconfigured", func(t *testing.T) {
		engine, _ := newEngine(t, config.Defaults(), nil)
		v := engine.Authorize(ctx, request("alice", "GET"), []Rule{RequireValidUser()})
		if v.Code != access.Decline {
			t.Errorf("verdict = %v, want decline", v.Code)
		}
	})

	t.Run("No rules", func(t *testing.T) {
		engine, _ := newEngine(t, groupConfig(), nil)
		if v := engine.Authorize(ctx, request("alice", "GET"), nil); v.Code != access.Deny {
			t.Errorf("authoritative verdict = %v, want deny", v.Code)
		}

		cfg := groupConfig()
		cfg.Authoritative = false
		engine, _ = newEngine(t, cfg, nil)
		if v := engine.Authorize(ctx, request("alice", "GET"), nil); v.Code != access.Decline {
			t.Errorf("non-authoritative verdict = %v, want decline", v.Code)
		}
	})

	t.Run("Valid user short-circuits", func(t *testing.T) {
		engine, exec := newEngine(t, groupConfig(), nil)
		rules := []Rule{RequireValidUser(), RequireGroups([]string{"admins"})}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Allow {
			t.Errorf("verdict = %v, want allow", v.Code)
		}
		if len(exec.Statements) != 0 {
			t.Error("valid-user must not issue group lookups")
		}
	})

	t.Run("User list", func(t *testing.T) {
		engine, _ := newEngine(t, groupConfig(), nil)
		rules := []Rule{RequireUsers([]string{"bob", "carol"})}

		if v := engine.Authorize(ctx, request("bob", "GET"), rules); v.Code != access.Allow {
			t.Errorf("verdict = %v, want allow", v.Code)
		}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Deny {
			t.Errorf("verdict = %v, want deny", v.Code)
		}
	})

	t.Run("Group membership", func(t *testing.T) {
		engine, _ := newEngine(t, groupConfig(), map[string][]string{
			"alice": {"staff"},
		})

		rules := []Rule{RequireGroups([]string{"admins", "staff"})}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Allow {
			t.Errorf("verdict = %v, want allow (%s)", v.Code, v.Reason)
		}

		rules = []Rule{RequireGroups([]string{"admins"})}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Deny {
			t.Errorf("authoritative verdict = %v, want deny", v.Code)
		}
	})

	t.Run("Non-authoritative miss falls through", func(t *testing.T) {
		cfg := groupConfig()
		cfg.Authoritative = false
		engine, _ := newEngine(t, cfg, map[string][]string{
			"alice": {"staff"},
		})

		// First rule misses, second matches.
		rules := []Rule{
			RequireUsers([]string{"bob"}),
			RequireGroups([]string{"staff"}),
		}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Allow {
			t.Errorf("verdict = %v, want allow", v.Code)
		}

		// Everything misses: no opinion.
		rules = []Rule{
			RequireUsers([]string{"bob"}),
			RequireGroups([]string{"admins"}),
		}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Decline {
			t.Errorf("verdict = %v, want decline", v.Code)
		}
	})

	t.Run("Method scoping", func(t *testing.T) {
		cfg := groupConfig()
		cfg.Authoritative = false
		engine, _ := newEngine(t, cfg, nil)

		// The only rule is scoped to POST; a GET finds no applicable
		// rule and declines.
		rules := []Rule{RequireUsers([]string{"bob"}, "POST")}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Decline {
			t.Errorf("verdict = %v, want decline", v.Code)
		}

		// Unrestricted rules apply to every method.
		rules = []Rule{RequireValidUser()}
		if v := engine.Authorize(ctx, request("alice", "DELETE"), rules); v.Code != access.Allow {
			t.Errorf("verdict = %v, want allow", v.Code)
		}
	})

	t.Run("Store failure aborts with a fault", func(t *testing.T) {
		engine, exec := newEngine(t, groupConfig(), nil)
		exec.Err = errors.New("connection refused")

		rules := []Rule{RequireGroups([]string{"admins"})}
		if v := engine.Authorize(ctx, request("alice", "GET"), rules); v.Code != access.Error {
			t.Errorf("verdict = %v, want error", v.Code)
		}
	})
}
