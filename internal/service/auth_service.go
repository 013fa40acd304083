package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stepping_debug/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Scopes a token can carry.
const (
	ScopeRead  = "stepping.read"
	ScopeWrite = "stepping.write"
)

// KnownScopes lists every grantable scope in grant order.
var KnownScopes = []string{ScopeRead, ScopeWrite}

const defaultTokenTTL = time.Hour

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrNoGrantableScope = errors.New("none of the requested scopes can be granted")
	ErrEmptyUsername    = errors.New("username is empty")
)

// AuthService handles sign-up, sign-in with scope negotiation, and token parsing.
type AuthService struct {
	authRepo repository.Authorization
	key      []byte
	ttl      time.Duration
}

func NewAuthService(repo repository.Authorization, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{authRepo: repo, key: []byte(cfg.SigningKey), ttl: ttl}
}

// SignUp hashes password and creates a new user.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, ErrEmptyUsername
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.authRepo.Create(ctx, username, hash)
}

// Claims are the JWT claims issued at sign-in.
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Scope  string `json:"scope"`
}

// GenerateToken checks credentials and issues a token for the negotiated scopes.
// scope is a space-separated request; empty asks for every known scope.
func (s *AuthService) GenerateToken(ctx context.Context, username, password, scope string) (Grant, error) {
	granted, err := negotiateScopes(scope)
	if err != nil {
		return Grant{}, err
	}

	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return Grant{}, err
	}
	if u == nil {
		return Grant{}, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return Grant{}, ErrInvalidPassword
	}

	expires := time.Now().Add(s.ttl)
	token, err := s.issueToken(u.ID, granted, expires)
	if err != nil {
		return Grant{}, err
	}
	return Grant{Token: token, Scopes: granted, ExpiresAt: expires}, nil
}

// ParseToken validates accessToken and returns its principal.
func (s *AuthService) ParseToken(accessToken string) (Principal, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: claims.UserID, Scopes: strings.Fields(claims.Scope)}, nil
}

// negotiateScopes keeps the known scopes of a request, in request order and without repeats.
func negotiateScopes(requested string) ([]string, error) {
	fields := strings.Fields(requested)
	if len(fields) == 0 {
		out := make([]string, len(KnownScopes))
		copy(out, KnownScopes)
		return out, nil
	}
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		if seen[f] || !isKnownScope(f) {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, ErrNoGrantableScope
	}
	return out, nil
}

func isKnownScope(scope string) bool {
	for _, k := range KnownScopes {
		if k == scope {
			return true
		}
	}
	return false
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(userID int, scopes []string, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Scope:  ScopeString(scopes),
	})
	return token.SignedString(s.key)
}
