package websession

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

type ctxKey struct{}

// FromContext returns the session attached by Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// Middleware loads the session before the handler runs and saves it right
// before the response header goes out, so handlers never deal with cookies.
func (m *Manager) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Load(r)
			if err != nil {
				slogx.FromContext(r.Context()).Error("failed to load session", "error", err)
				httpx.ErrServerError.Write(w)
				return
			}

			sw := &saveWriter{ResponseWriter: w, m: m, sess: sess, ctx: r.Context()}
			next.ServeHTTP(sw, r.WithContext(WithSession(r.Context(), sess)))
			sw.save()
		})
	}
}

type saveWriter struct {
	http.ResponseWriter

	m     *Manager
	sess  *Session
	ctx   context.Context
	saved bool
}

func (w *saveWriter) save() {
	if w.saved {
		return
	}
	w.saved = true
	if err := w.m.SaveIfDirty(w.ctx, w.ResponseWriter, w.sess); err != nil {
		slogx.FromContext(w.ctx).Error("failed to save session", "error", err)
	}
}

func (w *saveWriter) WriteHeader(code int) {
	w.save()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveWriter) Write(b []byte) (int, error) {
	w.save()
	return w.ResponseWriter.Write(b)
}
