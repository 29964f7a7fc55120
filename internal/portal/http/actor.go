package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/service"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

type actorKey struct{}

func withActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the actor resolved by requireActor.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}

// requireActor resolves the logged in actor of the session's portal and
// refreshes its session record.
func (r *Router) requireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		sess := websession.FromContext(ctx)
		if sess == nil {
			httpx.ErrUnauthenticated.Write(w)
			return
		}

		actor, err := r.LoginService.Resolve(ctx, sess)
		if errors.Is(err, service.ErrUnauthenticated) {
			httpx.ErrUnauthenticated.Write(w)
			return
		}
		if err != nil {
			slogx.FromContext(ctx).Error("failed to resolve actor", "error", err)
			httpx.ErrServerError.Write(w)
			return
		}

		ctx = slogx.With(ctx, "portal", sess.Portal(), "user_id", actor.User.ID)

		if r.Tracker != nil {
			guard := domain.GuardFor(domain.Normalize(sess.Portal()))
			if _, err := r.Tracker.Touch(ctx, actor, guard, sess.ID()); err != nil {
				slogx.FromContext(ctx).Warn("failed to touch session record", "error", err)
			}
		}

		next.ServeHTTP(w, req.WithContext(withActor(ctx, actor)))
	})
}
