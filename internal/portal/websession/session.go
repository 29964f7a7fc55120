// Package websession keeps browser sessions server side. The cookie only
// carries a signed session token.
package websession

import (
	"maps"
	"strings"

	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
)

const flashPrefix = "_flash."

// Well known keys.
const (
	KeyPortal = "portal"
)

// Session is the request-scoped view of a web session. It is not safe for
// concurrent use.
type Session struct {
	token    string
	oldToken string
	data     map[string]string
	flashed  map[string]string
	dirty    bool
}

func newSession() (*Session, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	return &Session{
		token:   token,
		data:    map[string]string{},
		flashed: map[string]string{},
	}, nil
}

// fromStored rebuilds a session and moves last request's flash values out
// of the persisted data.
func fromStored(token string, data map[string]string) *Session {
	s := &Session{
		token:   token,
		data:    make(map[string]string, len(data)),
		flashed: map[string]string{},
	}
	for k, v := range data {
		if name, ok := strings.CutPrefix(k, flashPrefix); ok {
			s.flashed[name] = v
			s.dirty = true
			continue
		}
		s.data[k] = v
	}
	return s
}

// ID is the public identifier of the session. It never exposes the token.
func (s *Session) ID() string { return cryptox.FingerprintToken(s.token) }

func (s *Session) Get(key string) string { return s.data[key] }

func (s *Session) Put(key, value string) {
	s.data[key] = value
	s.dirty = true
}

func (s *Session) Forget(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.dirty = true
	}
}

// Flash stores a value that is readable through Flashed on the next request only.
func (s *Session) Flash(key, value string) { s.Put(flashPrefix+key, value) }

// Flashed returns a value flashed by the previous request.
func (s *Session) Flashed(key string) string { return s.flashed[key] }

// Regenerate issues a new token and keeps the data. The previous row is
// removed on Save.
func (s *Session) Regenerate() error {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}
	if s.oldToken == "" {
		s.oldToken = s.token
	}
	s.token = token
	s.dirty = true
	return nil
}

// Invalidate drops all data and issues a new token.
func (s *Session) Invalidate() error {
	s.data = map[string]string{}
	s.flashed = map[string]string{}
	return s.Regenerate()
}

// All returns a copy of the persisted data.
func (s *Session) All() map[string]string { return maps.Clone(s.data) }

// Portal returns the portal stamped into the session, if any.
func (s *Session) Portal() string { return s.data[KeyPortal] }

// New returns an empty session with a fresh token.
func New() (*Session, error) { return newSession() }
