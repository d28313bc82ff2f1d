package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/utils/validators"

	"github.com/golang-jwt/jwt/v5"
)

type memorySettings struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
}

func (m *memorySettings) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	return m.values[key], nil
}

func (m *memorySettings) Set(key, value string, now int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *memorySettings) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type fakeAuthClient struct {
	counter
	result *trackpass.LoginResult
	err    error
}

func (f *fakeAuthClient) Login(ctx context.Context, creds trackpass.Credentials) (*trackpass.LoginResult, error) {
	f.hit("login")
	return f.result, f.err
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func newAuthFixture(result *trackpass.LoginResult) (*AuthService, *fakeAuthClient, *memorySettings) {
	client := &fakeAuthClient{result: result}
	settings := &memorySettings{}
	return NewAuthService(client, NewTokenStore(settings), validators.New(), ""), client, settings
}

func TestLoginManager(t *testing.T) {
	s, _, settings := newAuthFixture(&trackpass.LoginResult{Token: "opaque", Role: "GESTOR"})

	resp, err := s.Login(context.Background(), &contract.LoginRequest{Login: " gestor@empresa.com ", Password: "Senha@123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Role != DefaultManagerRole || settings.values["token"] != "opaque" {
		t.Errorf("Login() = %+v, stored %v", resp, settings.values)
	}
	if !s.Authenticated() {
		t.Error("opaque token should count as a session")
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if s.Authenticated() || settings.values["token"] != "" {
		t.Error("logout should clear the session")
	}
}

func TestLoginRoleFromToken(t *testing.T) {
	token := signed(t, jwt.MapClaims{"sub": "7", "role": "gestor"})
	s, _, _ := newAuthFixture(&trackpass.LoginResult{Token: token})

	resp, err := s.Login(context.Background(), &contract.LoginRequest{Login: "g", Password: "Senha@123"})
	if err != nil || resp.Role != "GESTOR" {
		t.Errorf("Login() = %+v, %v", resp, err)
	}
}

func TestLoginRefusesOtherRoles(t *testing.T) {
	s, _, settings := newAuthFixture(&trackpass.LoginResult{Token: "opaque", Role: "MOTORISTA"})

	_, err := s.Login(context.Background(), &contract.LoginRequest{Login: "m", Password: "Senha@123"})
	if !errors.Is(err, ErrNotManager) {
		t.Errorf("Login() error = %v, want ErrNotManager", err)
	}
	if settings.values["token"] != "" {
		t.Error("non managers must not keep a token")
	}
}

func TestLoginWeakPasswordSkipsBackend(t *testing.T) {
	s, client, _ := newAuthFixture(&trackpass.LoginResult{Token: "opaque", Role: "GESTOR"})

	if _, err := s.Login(context.Background(), &contract.LoginRequest{Login: "g", Password: "senha"}); err == nil {
		t.Error("weak password accepted")
	}
	if client.get("login") != 0 {
		t.Error("weak password reached the backend")
	}
}

func TestAuthenticatedExpiry(t *testing.T) {
	s, _, settings := newAuthFixture(nil)
	s.now = func() time.Time { return time.Unix(2000, 0) }

	settings.values = map[string]string{"token": signed(t, jwt.MapClaims{"exp": 1000})}
	if s.Authenticated() {
		t.Error("expired token counted as a session")
	}

	s, _, settings = newAuthFixture(nil)
	s.now = func() time.Time { return time.Unix(2000, 0) }
	settings.values = map[string]string{"token": signed(t, jwt.MapClaims{"exp": 3000})}
	if !s.Authenticated() {
		t.Error("valid token refused")
	}
}

func TestTokenStoreLoadsOnce(t *testing.T) {
	settings := &memorySettings{values: map[string]string{"token": "persisted"}}
	store := NewTokenStore(settings)

	if store.Token() != "persisted" || store.Token() != "persisted" {
		t.Fatal("stored token not loaded")
	}
	if settings.gets != 1 {
		t.Errorf("repository read %d times, want 1", settings.gets)
	}
}
