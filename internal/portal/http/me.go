package http

import (
	"net/http"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/portalsdk"
)

// MeHandler godoc
//
//	@Summary		Current actor
//	@Description	Describes the actor logged in on the session's portal.
//	@Tags			Account
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	portalsdk.MeResponse
//	@Failure		401	{object}	portalsdk.ErrorResponse	"Not logged in"
//	@Router			/v1/me [get]
func MeHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		httpx.ErrUnauthenticated.Write(w)
		return
	}

	portal := domain.PortalWeb
	if sess := websession.FromContext(r.Context()); sess != nil {
		portal = domain.Normalize(sess.Portal())
	}

	resp := portalsdk.MeResponse{
		UserID:    actor.UserID(),
		Name:      actor.User.Name,
		Email:     actor.User.Email,
		Role:      string(actor.Role()),
		Portal:    portal.String(),
		Guard:     domain.GuardFor(portal),
		ActorType: actor.TrackingType(),
		IsAdmin:   actor.IsAdmin(),
	}
	resp.EmployeeID, _ = actor.EmployeeID()
	resp.SalesRepID, _ = actor.SalesRepID()
	resp.CustomerID, _ = actor.CustomerID()
	resp.ProjectID, _ = actor.AssignedProjectID()

	httpx.WriteJSON(w, http.StatusOK, resp)
}
