package service

import (
	"net/url"
	"strings"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
)

// SafeRedirect accepts same-origin paths only: the target must start with
// a single "/" and contain no backslash or scheme/host.
func SafeRedirect(target string) (string, bool) {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "", false
	}
	if strings.ContainsAny(target, "\\\r\n\t") {
		return "", false
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	return target, true
}

// DefaultRedirect is where an actor lands after login without a usable
// redirect parameter. Client-project users go straight to their project.
func DefaultRedirect(portal domain.Portal, actor domain.Actor) string {
	if portal == domain.PortalWeb {
		if projectID, ok := actor.AssignedProjectID(); ok {
			return domain.RoutePath("client.projects.show", map[string]string{"id": projectID})
		}
	}
	return domain.RoutePath(domain.DefaultRedirectRoute(portal), nil)
}

// ResolveRedirect honours a safe redirect and falls back to DefaultRedirect.
func ResolveRedirect(portal domain.Portal, actor domain.Actor, requested string) string {
	if target, ok := SafeRedirect(requested); ok {
		return target
	}
	return DefaultRedirect(portal, actor)
}
