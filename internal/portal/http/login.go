package http

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/service"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/portalsdk"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

const (
	flashError = "error"
	flashEmail = "email"

	msgRecaptchaFailed = "reCAPTCHA verification failed. Please try again."
)

var loginForm = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}} login</title></head>
<body>
<h1>{{.Title}} login</h1>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}" data-recaptcha-action="{{.RecaptchaAction}}">
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<label>Password <input type="password" name="password" required></label>
<input type="hidden" name="g-recaptcha-response" value="">
<button type="submit">Log in</button>
</form>
</body>
</html>
`))

type loginView struct {
	Title           string
	Action          string
	Error           string
	Email           string
	RecaptchaAction string
}

// LoginHandler serves the login form and its submission for one portal.
type LoginHandler struct {
	LoginService *service.LoginService
}

// Form godoc
//
//	@Summary		Login form
//	@Description	Renders the login form of a portal with the error and email flashed by a failed attempt.
//	@Description	Portals: /login (web), /admin/login, /employee/login, /sales/login, /support/login
//	@Tags			Login
//	@Produce		html
//	@Param			redirect	query		string	false	"Local path to continue to after login"
//	@Success		200			{string}	string	"HTML form"
//	@Router			/login [get]
func (h *LoginHandler) Form(p domain.Portal) http.HandlerFunc {
	def := p.Definition()
	return func(w http.ResponseWriter, r *http.Request) {
		view := loginView{
			Title:           strings.ToUpper(def.Portal.String()[:1]) + def.Portal.String()[1:],
			Action:          loginAction(def.LoginPath, r.URL.Query().Get("redirect")),
			RecaptchaAction: def.RecaptchaAction,
		}
		if sess := websession.FromContext(r.Context()); sess != nil {
			view.Error = sess.Flashed(flashError)
			view.Email = sess.Flashed(flashEmail)
		}

		httpx.NoCache(w)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := loginForm.Execute(w, view); err != nil {
			slogx.FromContext(r.Context()).Error("failed to render login form", "error", err)
		}
	}
}

// Submit godoc
//
//	@Summary		Submit login credentials
//	@Description	Authenticates against the portal's guard and checks the portal's access rules.
//	@Description
//	@Description	**Response:**
//	@Description	- Success: 302 redirect to the requested local path or the portal dashboard
//	@Description	- Failure, throttling or reCAPTCHA failure: 302 back to the login path with a flashed error
//	@Description	- Malformed form: 422 JSON with per-field messages
//	@Tags			Login
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			redirect				query		string								false	"Local path to continue to after login"
//	@Param			email					formData	string								true	"Email address"
//	@Param			password				formData	string								true	"Password"
//	@Param			g-recaptcha-response	formData	string								false	"reCAPTCHA token"
//	@Success		302						{string}	string								"Redirect"
//	@Failure		422						{object}	portalsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		500						{object}	portalsdk.ErrorResponse				"Server error"
//	@Router			/login [post]
func (h *LoginHandler) Submit(p domain.Portal) http.HandlerFunc {
	def := p.Definition()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := slogx.FromContext(ctx)

		sess := websession.FromContext(ctx)
		if sess == nil || h.LoginService == nil {
			httpx.ErrServerError.Write(w)
			return
		}

		if err := r.ParseForm(); err != nil {
			httpx.ErrBadRequest.Write(w)
			return
		}

		redirect := r.URL.Query().Get("redirect")
		if redirect == "" {
			redirect = r.PostForm.Get("redirect")
		}

		req := service.LoginRequest{
			Portal:         def.Portal.String(),
			Email:          r.PostForm.Get("email"),
			Password:       r.PostForm.Get("password"),
			RecaptchaToken: r.PostForm.Get("g-recaptcha-response"),
			Redirect:       redirect,
			IP:             httpx.ClientIP(r),
			UserAgent:      r.UserAgent(),
		}

		res, err := h.LoginService.Authenticate(ctx, req, sess)

		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			httpx.WriteJSON(w, http.StatusUnprocessableEntity, portalsdk.ValidationErrorResponse{
				Error:            "validation_failed",
				ErrorDescription: "The given data was invalid.",
				Fields:           verr.Fields,
			})
			return
		case errors.Is(err, service.ErrRecaptchaFailed):
			logger.Warn("recaptcha verification failed", "portal", def.Portal.String(), "error", err)
			sess.Flash(flashError, msgRecaptchaFailed)
			sess.Flash(flashEmail, strings.TrimSpace(req.Email))
			http.Redirect(w, r, def.LoginPath, http.StatusFound)
			return
		case err != nil:
			logger.Error("login failed", "portal", def.Portal.String(), "error", err)
			httpx.ErrServerError.Write(w)
			return
		}

		if !res.OK {
			sess.Flash(flashError, res.Error)
			sess.Flash(flashEmail, res.Email)
			http.Redirect(w, r, def.LoginPath, http.StatusFound)
			return
		}

		http.Redirect(w, r, res.Redirect, http.StatusFound)
	}
}

func loginAction(path, redirect string) string {
	if redirect == "" {
		return path
	}
	return path + "?" + url.Values{"redirect": {redirect}}.Encode()
}
