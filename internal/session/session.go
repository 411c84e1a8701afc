package session

import (
	"context"
	"encoding/json"
	"sync"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/storage"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const (
	tokenKey = "token"
	userKey  = "user"

	roleAdmin = "ADMIN"
)

type (
	Params struct {
		fx.In
		Logger  logger.Logger
		Storage storage.Store
		EMS     emsapi.Service
	}

	// Listener receives the new current user on every login/logout. A nil
	// user means logged out.
	Listener func(user *structs.User)

	Store interface {
		Login(ctx context.Context, req structs.LoginRequest) (structs.User, error)
		Logout(ctx context.Context) error
		Token(ctx context.Context) string
		IsLoggedIn(ctx context.Context) bool
		IsAdmin() bool
		CurrentUser() *structs.User
		Subscribe(l Listener) (unsubscribe func())
	}

	store struct {
		logger  logger.Logger
		storage storage.Store
		ems     emsapi.Service

		m         sync.Mutex
		current   *structs.User
		listeners map[int]Listener
		nextID    int
	}
)

func New(p Params) Store {
	s := &store{
		logger:    p.Logger,
		storage:   p.Storage,
		ems:       p.EMS,
		listeners: map[int]Listener{},
	}
	s.current = s.userFromStorage(context.Background())
	return s
}

func (s *store) Login(ctx context.Context, req structs.LoginRequest) (structs.User, error) {
	resp, err := s.ems.Login(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "->ems.Login", zap.Error(err))
		return structs.User{}, err
	}

	user := structs.User{Username: resp.Username, Role: resp.Role}

	if err := s.storage.Set(ctx, tokenKey, resp.Token); err != nil {
		return structs.User{}, err
	}
	if err := s.storage.Set(ctx, userKey, string(marshalUser(user))); err != nil {
		return structs.User{}, err
	}

	s.setCurrent(&user)
	s.logger.Info(ctx, "session established", zap.String("username", user.Username), zap.String("role", user.Role))
	return user, nil
}

func (s *store) Logout(ctx context.Context) error {
	// both keys go together; a half-cleared session must not survive
	if err := s.storage.Remove(ctx, tokenKey); err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, userKey); err != nil {
		return err
	}

	s.setCurrent(nil)
	s.logger.Info(ctx, "session cleared")
	return nil
}

func (s *store) Token(ctx context.Context) string {
	token, err := s.storage.Get(ctx, tokenKey)
	if err != nil {
		return ""
	}
	return token
}

func (s *store) IsLoggedIn(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// IsAdmin is a plain role equality check, no hierarchy.
func (s *store) IsAdmin() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.current != nil && s.current.Role == roleAdmin
}

func (s *store) CurrentUser() *structs.User {
	s.m.Lock()
	defer s.m.Unlock()

	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Subscribe registers a listener notified synchronously on every session
// change. The returned func removes it.
func (s *store) Subscribe(l Listener) func() {
	s.m.Lock()
	defer s.m.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.m.Lock()
		defer s.m.Unlock()
		delete(s.listeners, id)
	}
}

func (s *store) setCurrent(user *structs.User) {
	s.m.Lock()
	s.current = user
	notify := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		notify = append(notify, l)
	}
	s.m.Unlock()

	for _, l := range notify {
		l(user)
	}
}

// userFromStorage seeds the live value so a restart keeps the login. When the
// user blob is gone but a token remains, the unverified JWT claims give a
// best-effort username with no role.
func (s *store) userFromStorage(ctx context.Context) *structs.User {
	raw, err := s.storage.Get(ctx, userKey)
	if err == nil && raw != "" {
		var user structs.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			return &user
		}
		s.logger.Warn(ctx, "stored user blob is not valid JSON")
	}

	token, err := s.storage.Get(ctx, tokenKey)
	if err != nil || token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		s.logger.Warn(ctx, "stored token is not parseable", zap.Error(err))
		return nil
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil
	}
	return &structs.User{Username: sub}
}

func marshalUser(user structs.User) []byte {
	b, _ := json.Marshal(user)
	return b
}
