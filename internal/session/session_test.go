package session

import (
	"context"
	"errors"
	"testing"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/storage"

	"github.com/dgrijalva/jwt-go"
)

type stubEMS struct {
	emsapi.Service

	resp structs.LoginResponse
	err  error
}

func (s stubEMS) Login(context.Context, structs.LoginRequest) (structs.LoginResponse, error) {
	return s.resp, s.err
}

func adminLogin() stubEMS {
	return stubEMS{resp: structs.LoginResponse{
		Token:    "jwt-token",
		Username: "admin",
		Role:     "ADMIN",
	}}
}

func newStore(ems emsapi.Service, st storage.Store) Store {
	return New(Params{Logger: logger.New("error"), Storage: st, EMS: ems})
}

func TestLoginPersistsBothKeys(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	s := newStore(adminLogin(), st)

	user, err := s.Login(ctx, structs.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" || user.Role != "ADMIN" {
		t.Errorf("user = %+v", user)
	}

	if token, _ := st.Get(ctx, "token"); token != "jwt-token" {
		t.Errorf("stored token = %q", token)
	}
	if raw, _ := st.Get(ctx, "user"); raw != `{"username":"admin","role":"ADMIN"}` {
		t.Errorf("stored user = %q", raw)
	}
	if !s.IsLoggedIn(ctx) || !s.IsAdmin() {
		t.Error("expected logged-in admin session")
	}
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	s := newStore(stubEMS{err: errors.New("bad credentials")}, st)

	if _, err := s.Login(ctx, structs.LoginRequest{}); err == nil {
		t.Fatal("expected error")
	}
	if s.IsLoggedIn(ctx) {
		t.Error("session exists after failed login")
	}
	if _, err := st.Get(ctx, "token"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("token was stored despite failed login")
	}
}

func TestLogoutClearsBothKeys(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	s := newStore(adminLogin(), st)

	if _, err := s.Login(ctx, structs.LoginRequest{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if s.IsLoggedIn(ctx) {
		t.Error("still logged in after logout")
	}
	if s.CurrentUser() != nil {
		t.Error("current user survives logout")
	}
	for _, key := range []string{"token", "user"} {
		if _, err := st.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("key %s survives logout", key)
		}
	}
}

func TestIsAdminIsExactRoleMatch(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{role: "ADMIN", want: true},
		{role: "USER", want: false},
		{role: "admin", want: false},
		{role: "", want: false},
	}

	for _, tt := range tests {
		t.Run("role "+tt.role, func(t *testing.T) {
			s := newStore(stubEMS{resp: structs.LoginResponse{Token: "t", Username: "u", Role: tt.role}}, storage.NewMemory())
			if _, err := s.Login(context.Background(), structs.LoginRequest{}); err != nil {
				t.Fatalf("Login: %v", err)
			}
			if s.IsAdmin() != tt.want {
				t.Errorf("IsAdmin() with role %q = %v, want %v", tt.role, s.IsAdmin(), tt.want)
			}
		})
	}
}

func TestSeedsFromStoredUser(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	st.Set(ctx, "token", "opaque-token")
	st.Set(ctx, "user", `{"username":"jane","role":"USER"}`)

	s := newStore(stubEMS{}, st)
	user := s.CurrentUser()
	if user == nil || user.Username != "jane" || user.Role != "USER" {
		t.Errorf("seeded user = %+v, want jane/USER", user)
	}
}

func TestSeedsFromTokenClaimsWhenUserBlobMissing(t *testing.T) {
	ctx := context.Background()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "jane"}).
		SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	st := storage.NewMemory()
	st.Set(ctx, "token", token)

	s := newStore(stubEMS{}, st)
	user := s.CurrentUser()
	if user == nil || user.Username != "jane" {
		t.Errorf("seeded user = %+v, want jane from token claims", user)
	}
	if s.IsAdmin() {
		t.Error("token-seeded session must carry no role")
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	ctx := context.Background()
	s := newStore(adminLogin(), storage.NewMemory())

	var events []*structs.User
	unsubscribe := s.Subscribe(func(user *structs.User) {
		events = append(events, user)
	})

	if _, err := s.Login(ctx, structs.LoginRequest{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0] == nil || events[0].Username != "admin" {
		t.Errorf("first event = %+v, want admin user", events[0])
	}
	if events[1] != nil {
		t.Errorf("second event = %+v, want nil for logout", events[1])
	}

	unsubscribe()
	if _, err := s.Login(ctx, structs.LoginRequest{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events after unsubscribe = %d, want still 2", len(events))
	}
}
