package httpx

import (
	"net/http"
	"strings"
)

// Requirement is the access requirement a route policy rule imposes.
type Requirement struct {
	kind requirementKind
	role string
}

type requirementKind int

const (
	reqPublic requirementKind = iota
	reqAuthenticated
	reqRole
)

// Public allows any caller, authenticated or not.
var Public = Requirement{kind: reqPublic}

// Authenticated requires a resolved identity, any role.
var Authenticated = Requirement{kind: reqAuthenticated}

// Role requires a resolved identity carrying the given role.
func Role(name string) Requirement {
	return Requirement{kind: reqRole, role: name}
}

// Rule binds a request matcher to an access requirement. Method "*" matches
// any method. Pattern is an exact path, or a prefix wildcard ending in "/*",
// or the catch-all "*".
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "*" && r.Method != method {
		return false
	}

	switch {
	case r.Pattern == "*":
		return true
	case strings.HasSuffix(r.Pattern, "/*"):
		prefix := strings.TrimSuffix(r.Pattern, "*")
		return strings.HasPrefix(path, prefix) || path == strings.TrimSuffix(prefix, "/")
	default:
		return r.Pattern == path
	}
}

// Decision is the terminal outcome of policy evaluation.
type Decision int

const (
	Allow Decision = iota
	Unauthorized
	Forbidden
)

// Policy is a static ordered rule list evaluated first-match-wins. It is
// configured once at startup and immutable thereafter, so concurrent reads
// need no locking.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from rules in declared order.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate walks the rule list in order; the first rule whose matcher matches
// governs the request. CORS preflight requests are always allowed ahead of
// all other checks: they carry no credentials and must never be blocked by
// auth. Unmatched requests fall back to Authenticated.
func (p *Policy) Evaluate(method, path string, id *Identity) Decision {
	if method == http.MethodOptions {
		return Allow
	}

	req := Authenticated
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			req = rule.Requirement
			break
		}
	}

	switch req.kind {
	case reqPublic:
		return Allow
	case reqAuthenticated:
		if id == nil {
			return Unauthorized
		}
		return Allow
	default:
		if id == nil {
			return Unauthorized
		}
		if !id.HasRole(req.role) {
			return Forbidden
		}
		return Allow
	}
}

// PolicyMiddleware enforces the policy after AuthnMiddleware has run.
// Rejections short-circuit: the handler is never invoked and the fixed JSON
// body is emitted immediately. The denial stays generic so callers learn
// nothing about which role was required.
func PolicyMiddleware(p *Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var idPtr *Identity
			if id, ok := IdentityFromContext(r.Context()); ok {
				idPtr = &id
			}

			switch p.Evaluate(r.Method, r.URL.Path, idPtr) {
			case Unauthorized:
				WriteError(w, http.StatusUnauthorized, "unauthorized")
			case Forbidden:
				WriteError(w, http.StatusForbidden, "forbidden")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
