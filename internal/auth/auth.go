package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidCredential = errors.New("invalid username or password")
)

// Session is what a successful login or signup resolves to
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Service owns the anonymous<->authenticated transition. User and token are
// persisted only as a side effect of a successful remote call; a failed call
// mutates nothing.
type Service struct {
	store  store.Store
	client *adminapi.Client
	cfg    *config.Config
}

func NewService(st store.Store, client *adminapi.Client, cfg *config.Config) *Service {
	return &Service{store: st, client: client, cfg: cfg}
}

// StoreTokenSource feeds the persisted bearer token to the admin API client
type StoreTokenSource struct {
	Store store.Store
}

func (t *StoreTokenSource) Token(ctx context.Context) string {
	var token string
	found, err := t.Store.Get(ctx, store.KeyToken, &token)
	if err != nil || !found {
		return ""
	}
	return token
}

// Login authenticates against the admin backend. When the backend is
// unreachable it falls back to gateway-local demo accounts so the floor
// stays playable during outages.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	res := s.client.Post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if !res.Success {
		if res.StatusCode == 0 || res.Message == adminapi.GenericNetworkError {
			return s.demoLogin(ctx, username, password)
		}
		return nil, errors.New(res.Message)
	}

	session, err := parseSession(res)
	if err != nil {
		return nil, err
	}
	s.persistSession(ctx, session)
	log.Printf("[AUTH] Login succeeded for account %s", session.User.AccountID)
	return session, nil
}

// Signup registers a new player. Password confirmation is validated before
// any network call.
func (s *Service) Signup(ctx context.Context, username, email, phone, password, confirm string) (*Session, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	res := s.client.Post(ctx, "/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"phone":    phone,
		"password": password,
	})
	if !res.Success {
		return nil, errors.New(res.Message)
	}

	session, err := parseSession(res)
	if err != nil {
		return nil, err
	}
	s.persistSession(ctx, session)
	log.Printf("[AUTH] Signup succeeded for account %s", session.User.AccountID)
	return session, nil
}

// Logout clears the persisted session and the per-account caches tied to it.
// Best effort and non-atomic: a storage error mid-sequence leaves partial
// state, which is acceptable for a cache.
func (s *Service) Logout(ctx context.Context) {
	var user models.User
	found, _ := s.store.Get(ctx, store.KeyUser, &user)

	keys := []string{store.KeyUser, store.KeyToken, store.KeyWallets, store.KeyPending}
	if found && user.AccountID != "" {
		keys = append(keys, store.CheckInKey(user.AccountID), store.LastSpinKey(user.AccountID))
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("[AUTH] Failed to clear %s on logout: %v", key, err)
		}
	}
}

// CurrentUser resolves the active session. An absent or remote-rejected
// token counts as an implicit logout and clears persisted credentials; a
// network failure falls back to the cached user record.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	var token string
	found, err := s.store.Get(ctx, store.KeyToken, &token)
	if err != nil || !found || token == "" {
		s.Logout(ctx)
		return nil, ErrNotAuthenticated
	}

	res := s.client.Get(ctx, "/auth/profile")
	if !res.Success {
		if res.StatusCode == 401 || res.StatusCode == 403 {
			log.Printf("[AUTH] Token rejected by backend (status=%d), clearing session", res.StatusCode)
			s.Logout(ctx)
			return nil, ErrNotAuthenticated
		}
		// Backend unreachable: the cached record is the best we have
		var cached models.User
		if ok, _ := s.store.Get(ctx, store.KeyUser, &cached); ok {
			return &cached, nil
		}
		return nil, ErrNotAuthenticated
	}

	user, err := parseUser(res.Data)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, store.KeyUser, user); err != nil {
		log.Printf("[AUTH] Failed to refresh cached user: %v", err)
	}
	return user, nil
}

// RegisterDemoAccount creates a gateway-local account whose ledger never
// touches the admin backend. Credentials live in the cache store only.
func (s *Service) RegisterDemoAccount(ctx context.Context, username, password string) (*models.DemoAccount, error) {
	if strings.TrimSpace(username) == "" || len(password) < 6 {
		return nil, errors.New("username required and password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.DemoAccount{
		AccountID:    "ACC-" + strings.ToUpper(randomSuffix(6)),
		Username:     strings.ToLower(username),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	accounts := map[string]models.DemoAccount{}
	err = store.Update(ctx, s.store, store.KeyDemoAccounts, &accounts, func(found bool) error {
		if _, exists := accounts[account.Username]; exists {
			return errors.New("username already exists")
		}
		accounts[account.Username] = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[AUTH] Demo account registered: %s", account.AccountID)
	return &account, nil
}

func (s *Service) demoLogin(ctx context.Context, username, password string) (*Session, error) {
	accounts := map[string]models.DemoAccount{}
	found, err := s.store.Get(ctx, store.KeyDemoAccounts, &accounts)
	if err != nil || !found {
		return nil, ErrInvalidCredential
	}

	account, ok := accounts[strings.ToLower(username)]
	if !ok {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := s.mintLocalToken(account.AccountID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		User: &models.User{
			ID:        account.AccountID,
			AccountID: account.AccountID,
			Username:  account.Username,
		},
		Token: token,
	}
	s.persistSession(ctx, session)
	log.Printf("[AUTH] Demo login for %s (backend unreachable)", account.AccountID)
	return session, nil
}

func (s *Service) mintLocalToken(accountID string) (string, error) {
	exp := time.Now().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour)
	claims := jwt.MapClaims{
		"account_id": accountID,
		"local":      true,
		"exp":        exp.Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseLocalToken validates a gateway-minted demo session token
func ParseLocalToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	accountID, _ := claims["account_id"].(string)
	if accountID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return accountID, nil
}

func (s *Service) persistSession(ctx context.Context, session *Session) {
	if err := s.store.Set(ctx, store.KeyUser, session.User); err != nil {
		log.Printf("[AUTH] Failed to persist user: %v", err)
	}
	if err := s.store.Set(ctx, store.KeyToken, session.Token); err != nil {
		log.Printf("[AUTH] Failed to persist token: %v", err)
	}
}
