package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const DefaultManagerRole = "GESTOR"

var ErrNotManager = errors.New("authenticated user is not a manager")

type SettingRepository interface {
	Get(key string) (string, error)
	Set(key, value string, now int64) error
	Delete(key string) error
}

// TokenStore keeps the bearer token in memory and in the settings table,
// so a restart does not log the manager out.
type TokenStore struct {
	repo SettingRepository

	mu     sync.RWMutex
	token  string
	loaded bool
}

func NewTokenStore(repo SettingRepository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Token returns the current token, or "" when nobody is logged in.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		token, err := s.repo.Get(entity.KeyToken)
		if err != nil {
			log.Errorf("failed to load stored token: %v", err)
			return ""
		}
		s.token = token
		s.loaded = true
	}
	return s.token
}

func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(entity.KeyToken, token, utils.NowUTC()); err != nil {
		return err
	}
	s.token = token
	s.loaded = true
	return nil
}

func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	return s.repo.Delete(entity.KeyToken)
}

type AuthClient interface {
	Login(ctx context.Context, creds trackpass.Credentials) (*trackpass.LoginResult, error)
}

type AuthService struct {
	Client      AuthClient
	Tokens      *TokenStore
	Validate    *validator.Validate
	ManagerRole string

	now func() time.Time
}

func NewAuthService(client AuthClient, tokens *TokenStore, validate *validator.Validate, managerRole string) *AuthService {
	if managerRole == "" {
		managerRole = DefaultManagerRole
	}
	return &AuthService{
		Client:      client,
		Tokens:      tokens,
		Validate:    validate,
		ManagerRole: strings.ToUpper(managerRole),
		now:         time.Now,
	}
}

// Login opens the manager session. Weak passwords are rejected before
// reaching the backend, and only the manager role may keep a session.
func (s *AuthService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, error) {
	req.Login = strings.TrimSpace(req.Login)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	res, err := s.Client.Login(ctx, trackpass.Credentials{Login: req.Login, Password: req.Password})
	if err != nil {
		log.Warnf("login failed for %q: %v", req.Login, err)
		return nil, err
	}

	role := res.Role
	if role == "" {
		if data, err := utils.InspectToken(res.Token); err == nil {
			role = strings.ToUpper(data.Role)
		}
	}

	if role != s.ManagerRole {
		log.Warnf("login refused for %q: role %q is not %q", req.Login, role, s.ManagerRole)
		return nil, ErrNotManager
	}

	if err := s.Tokens.Save(res.Token); err != nil {
		log.Errorf("failed to persist token: %v", err)
		return nil, err
	}
	return &contract.LoginResponse{Role: role}, nil
}

func (s *AuthService) Logout() error {
	if err := s.Tokens.Clear(); err != nil {
		log.Errorf("failed to clear token: %v", err)
		return err
	}
	return nil
}

// Authenticated reports whether a usable token is stored. The signature is
// not checked here; an expired token counts as logged out.
func (s *AuthService) Authenticated() bool {
	token := s.Tokens.Token()
	if token == "" {
		return false
	}

	data, err := utils.InspectToken(token)
	if err != nil {
		// Opaque tokens are trusted until the backend says otherwise
		return true
	}
	return !data.Expired(s.now())
}
