package authz

import "strings"

// Kind classifies a require-rule.
type Kind int

const (
	// ValidUser accepts any authenticated user.
	ValidUser Kind = iota
	// Users accepts the named users only.
	Users
	// Groups accepts members of any of the named groups.
	Groups
)

// Rule is one require entry supplied by the host's access-control
// configuration. The engine treats the list as read-only input.
type Rule struct {
	// Methods restricts the rule to these HTTP methods. Empty means the
	// rule applies to every method.
	Methods []string
	Kind    Kind
	// Names are the user or group names for Users and Groups rules.
	Names []string
}

// RequireValidUser builds a valid-user rule.
func RequireValidUser(methods ...string) Rule {
	return Rule{Kind: ValidUser, Methods: methods}
}

// RequireUsers builds a user-list rule.
func RequireUsers(names []string, methods ...string) Rule {
	return Rule{Kind: Users, Names: names, Methods: methods}
}

// RequireGroups builds a group-list rule.
func RequireGroups(names []string, methods ...string) Rule {
	return Rule{Kind: Groups, Names: names, Methods: methods}
}

func (r Rule) appliesTo(method string) bool {
	if len(r.Methods) == 0 {
		return true
	}
	for _, m := range r.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
