// Package access defines the request record handed to the gate by its
// host and the verdict the gate hands back.
package access

import "time"

// Request carries everything the host knows about one authentication
// attempt. The engine never parses protocol input itself; the host fills
// this in from whatever transport it serves.
type Request struct {
	Username    string
	Password    string // submitted password, cleartext as received
	Method      string // HTTP method, e.g. "GET"
	RequestLine string // original request line, e.g. "GET /reports HTTP/1.1"
	RemoteAddr  string
	Time        time.Time

	// Initial is false for internal sub-requests. Access logging is
	// suppressed for those so one user action logs exactly once.
	Initial bool
}

// Code is the outcome class of a verdict.
type Code int

const (
	// Allow grants the request.
	Allow Code = iota
	// Deny rejects the request; the host should issue its auth challenge.
	Deny
	// Decline means this gate has no opinion and another authority may
	// decide. Distinct from Deny.
	Decline
	// Error is an internal fault (store unreachable, bad statement). The
	// host should answer with a generic server error, not a challenge.
	Error
)

// String returns the lowercase name of the code.
func (c Code) String() string {
	switch c {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Decline:
		return "decline"
	case Error:
		return "error"
	}
	return "unknown"
}

// Verdict is the gate's decision plus an operator-facing diagnostic.
// Reason is never sent to the client.
type Verdict struct {
	Code   Code
	Reason string
}

// Allowed returns an Allow verdict.
func Allowed() Verdict { return Verdict{Code: Allow} }

// Denied returns a Deny verdict with a diagnostic reason.
func Denied(reason string) Verdict { return Verdict{Code: Deny, Reason: reason} }

// Declined returns a Decline verdict.
func Declined() Verdict { return Verdict{Code: Decline} }

// Fault returns an Error verdict with a diagnostic reason.
func Fault(reason string) Verdict { return Verdict{Code: Error, Reason: reason} }
