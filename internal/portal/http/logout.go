package http

import (
	"net/http"

	"github.com/aussiebroadwan/portalgate/internal/portal/service"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

type LogoutHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Log out
//	@Description	Ends the login of the session's portal and redirects to that portal's login page.
//	@Tags			Login
//	@Success		302	{string}	string	"Redirect to the portal login path"
//	@Router			/logout [post]
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := websession.FromContext(r.Context())
	if sess == nil || h.LoginService == nil {
		httpx.ErrServerError.Write(w)
		return
	}

	loginPath, err := h.LoginService.Logout(r.Context(), sess)
	if err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "error", err)
	}
	http.Redirect(w, r, loginPath, http.StatusFound)
}
