package domain

import (
	"net/url"
	"strings"
)

// Portal identifies one of the login surfaces of the application.
type Portal string

const (
	PortalWeb      Portal = "web"
	PortalAdmin    Portal = "admin"
	PortalEmployee Portal = "employee"
	PortalSales    Portal = "sales"
	PortalSupport  Portal = "support"
)

// Guard names. Admin and web share the "web" guard.
const (
	GuardWeb      = "web"
	GuardEmployee = "employee"
	GuardSales    = "sales"
	GuardSupport  = "support"
)

// Definition is the static configuration of a portal.
type Definition struct {
	Portal               Portal
	Guard                string
	LoginRoute           string
	LoginPath            string
	PostRoute            string
	View                 string
	RecaptchaAction      string
	DefaultRedirectRoute string
}

var definitions = map[Portal]Definition{
	PortalWeb: {
		Portal:               PortalWeb,
		Guard:                GuardWeb,
		LoginRoute:           "login",
		LoginPath:            "/login",
		PostRoute:            "login.store",
		View:                 "auth.login",
		RecaptchaAction:      "LOGIN",
		DefaultRedirectRoute: "client.dashboard",
	},
	PortalAdmin: {
		Portal:               PortalAdmin,
		Guard:                GuardWeb,
		LoginRoute:           "admin.login",
		LoginPath:            "/admin/login",
		PostRoute:            "admin.login.store",
		View:                 "admin.auth.login",
		RecaptchaAction:      "ADMIN_LOGIN",
		DefaultRedirectRoute: "admin.dashboard",
	},
	PortalEmployee: {
		Portal:               PortalEmployee,
		Guard:                GuardEmployee,
		LoginRoute:           "employee.login",
		LoginPath:            "/employee/login",
		PostRoute:            "employee.login.store",
		View:                 "employee.auth.login",
		RecaptchaAction:      "EMPLOYEE_LOGIN",
		DefaultRedirectRoute: "employee.dashboard",
	},
	PortalSales: {
		Portal:               PortalSales,
		Guard:                GuardSales,
		LoginRoute:           "sales.login",
		LoginPath:            "/sales/login",
		PostRoute:            "sales.login.store",
		View:                 "sales.auth.login",
		RecaptchaAction:      "SALES_LOGIN",
		DefaultRedirectRoute: "sales.dashboard",
	},
	PortalSupport: {
		Portal:               PortalSupport,
		Guard:                GuardSupport,
		LoginRoute:           "support.login",
		LoginPath:            "/support/login",
		PostRoute:            "support.login.store",
		View:                 "support.auth.login",
		RecaptchaAction:      "SUPPORT_LOGIN",
		DefaultRedirectRoute: "support.tickets.index",
	},
}

// portalOrder lists every portal, web first.
var portalOrder = []Portal{PortalWeb, PortalAdmin, PortalEmployee, PortalSales, PortalSupport}

// Definitions returns a copy of the registry in a stable order.
func Definitions() []Definition {
	out := make([]Definition, 0, len(portalOrder))
	for _, p := range portalOrder {
		out = append(out, definitions[p])
	}
	return out
}

// Normalize maps any unknown input to PortalWeb.
func Normalize(s string) Portal {
	p := Portal(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := definitions[p]; ok {
		return p
	}
	return PortalWeb
}

// Definition returns the registry entry for p, falling back to web.
func (p Portal) Definition() Definition {
	if d, ok := definitions[p]; ok {
		return d
	}
	return definitions[PortalWeb]
}

func (p Portal) String() string { return string(p) }

func GuardFor(p Portal) string             { return p.Definition().Guard }
func LoginRouteName(p Portal) string       { return p.Definition().LoginRoute }
func LoginPath(p Portal) string            { return p.Definition().LoginPath }
func RecaptchaAction(p Portal) string      { return p.Definition().RecaptchaAction }
func DefaultRedirectRoute(p Portal) string { return p.Definition().DefaultRedirectRoute }

// FromRequestPath classifies a request path by its first segment. Only
// whole segments match, so "/administrator" stays on web.
func FromRequestPath(path string) Portal {
	path = "/" + strings.TrimLeft(path, "/")

	best, bestLen := PortalWeb, 0
	for _, p := range portalOrder[1:] {
		prefix := "/" + string(p)
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			continue
		}
		if len(prefix) > bestLen {
			best, bestLen = p, len(prefix)
		}
	}
	return best
}

var routes = map[string]string{
	"login":                 "/login",
	"admin.login":           "/admin/login",
	"employee.login":        "/employee/login",
	"sales.login":           "/sales/login",
	"support.login":         "/support/login",
	"client.dashboard":      "/client/dashboard",
	"client.projects.show":  "/client/projects/{id}",
	"admin.dashboard":       "/admin/dashboard",
	"employee.dashboard":    "/employee/dashboard",
	"sales.dashboard":       "/sales/dashboard",
	"support.tickets.index": "/support/tickets",
}

// RoutePath resolves a named route, substituting {param} placeholders.
// Unknown names resolve to "/".
func RoutePath(name string, params map[string]string) string {
	path, ok := routes[name]
	if !ok {
		return "/"
	}
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", url.PathEscape(v))
	}
	return path
}
