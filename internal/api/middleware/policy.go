package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/api/metrics"
	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
)

// Requirement is the access level a policy rule demands.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
)

// Rule pairs a path pattern with its access requirement. Pattern language:
//   - "**" matches every path (only valid as the trailing default rule)
//   - a pattern ending in "/**" matches the base path and everything below it
//   - anything else matches exactly
type Rule struct {
	Pattern     string
	Requirement Requirement
}

// Matches reports whether the rule's pattern covers the given request path.
func (r Rule) Matches(path string) bool {
	if r.Pattern == "**" {
		return true
	}
	if base, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return path == base || strings.HasPrefix(path, base+"/")
	}
	return path == r.Pattern
}

// AccessPolicy is an ordered rule list evaluated top to bottom; the first
// matching rule wins. The final rule must be the "**" default so every path
// has a decision.
type AccessPolicy struct {
	rules []Rule
}

// NewAccessPolicy builds a policy from an ordered rule list. Panics when the
// list is empty or does not end with the "**" default; a policy with holes is
// a programming error caught at startup, not at request time.
func NewAccessPolicy(rules []Rule) *AccessPolicy {
	if len(rules) == 0 || rules[len(rules)-1].Pattern != "**" {
		panic(`middleware: access policy must end with a "**" default rule`)
	}
	return &AccessPolicy{rules: rules}
}

// DefaultAccessPolicy returns the platform policy table: the public surface
// (root, auth, test, API docs, static assets, ops probes) followed by the
// authenticated-by-default catch-all.
func DefaultAccessPolicy() *AccessPolicy {
	return NewAccessPolicy([]Rule{
		{Pattern: "/", Requirement: Public},
		{Pattern: "/api/auth/**", Requirement: Public},
		{Pattern: "/api/test/**", Requirement: Public},
		{Pattern: "/v3/api-docs/**", Requirement: Public},
		{Pattern: "/swagger-ui/**", Requirement: Public},
		{Pattern: "/swagger-ui.html", Requirement: Public},
		{Pattern: "/swagger-resources/**", Requirement: Public},
		{Pattern: "/webjars/**", Requirement: Public},
		{Pattern: "/h2-console/**", Requirement: Public},
		{Pattern: "/images/**", Requirement: Public},
		{Pattern: "/health/**", Requirement: Public},
		{Pattern: "/metrics", Requirement: Public},
		{Pattern: "**", Requirement: Authenticated},
	})
}

// Decide returns the requirement of the first rule matching path.
func (p *AccessPolicy) Decide(path string) Requirement {
	for _, rule := range p.rules {
		if rule.Matches(path) {
			return rule.Requirement
		}
	}
	// Unreachable: the constructor guarantees a trailing default.
	return Authenticated
}

// Enforce terminates requests to protected paths that carry no authenticated
// identity. Rejections go through the unauthorized handler and never reach
// downstream handlers.
func (p *AccessPolicy) Enforce(sink ports.AuthEventSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if p.Decide(path) == Public {
				metrics.PolicyDecisionsTotal.WithLabelValues("public").Inc()
				return next(c)
			}

			if _, ok := Identity(c); !ok {
				metrics.PolicyDecisionsTotal.WithLabelValues("rejected").Inc()
				if sink != nil {
					metrics.AuditEventsTotal.WithLabelValues(string(domain.AuthActionDenied)).Inc()
					sink.Publish(domain.AuthEvent{Action: domain.AuthActionDenied, Path: path})
				}
				return Unauthorized(c)
			}

			metrics.PolicyDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}

// unauthorizedResponse mirrors the rejection body emitted by the auth entry
// point: status, error, message, and the request path.
type unauthorizedResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Unauthorized writes the structured 401 rejection for a request lacking
// required authentication. Pure function of the request; no other side effect.
func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, unauthorizedResponse{
		Status:  http.StatusUnauthorized,
		Error:   "Unauthorized",
		Message: "Full authentication is required to access this resource",
		Path:    c.Request().URL.Path,
	})
}
