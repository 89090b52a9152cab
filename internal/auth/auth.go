// FilePath: internal/auth/auth.go

// Package auth fronts the identity provider. Keycloak stays the source of
// truth for credentials; after a successful login the service issues its
// own short-lived HS256 token carrying just what the dashboard needs.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nerzal/gocloak/v13"
	"github.com/golang-jwt/jwt/v5"
	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

const defaultRole = "citizen"

// User is the identity carried in the local token.
type User struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

// Claims is the local token payload.
type Claims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// ProviderTokens are the identity provider's own tokens, passed through to
// the client untouched.
type ProviderTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IDToken      string `json:"idToken"`
}

// LoginResult bundles the local token, the resolved user and the provider
// tokens.
type LoginResult struct {
	Token          string         `json:"token"`
	User           User           `json:"user"`
	ProviderTokens ProviderTokens `json:"providerTokens"`
}

// Service handles registration, login and local token verification.
type Service struct {
	client    *gocloak.GoCloak
	keycloak  config.KeycloakConfig
	jwtSecret []byte
	tokenTTL  time.Duration
}

// New creates the auth service.
func New(kc config.KeycloakConfig, ac config.AuthConfig) *Service {
	ttl := ac.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		client:    gocloak.NewClient(kc.URL),
		keycloak:  kc,
		jwtSecret: []byte(ac.JWTSecret),
		tokenTTL:  ttl,
	}
}

// Register creates a user at the identity provider with the given role
// attribute and returns the new user id.
func (s *Service) Register(ctx context.Context, email, password, role string) (string, error) {
	if email == "" || password == "" {
		return "", errors.NewValidationError("email and password are required", nil)
	}
	if role == "" {
		role = defaultRole
	}

	admin, err := s.client.LoginAdmin(ctx, s.keycloak.AdminUser, s.keycloak.AdminPass, s.keycloak.Realm)
	if err != nil {
		return "", errors.NewUpstreamError("identity provider admin login failed", err)
	}

	user := gocloak.User{
		Username:   gocloak.StringP(email),
		Email:      gocloak.StringP(email),
		Enabled:    gocloak.BoolP(true),
		Attributes: &map[string][]string{"role": {role}},
	}

	userID, err := s.client.CreateUser(ctx, admin.AccessToken, s.keycloak.Realm, user)
	if err != nil {
		return "", errors.NewUpstreamError("registration failed", err)
	}

	if err := s.client.SetPassword(ctx, admin.AccessToken, userID, s.keycloak.Realm, password, false); err != nil {
		return "", errors.NewUpstreamError("failed to set user password", err)
	}

	nuts.L.Infof("[Auth] Registered user %s (%s)", email, userID)
	return userID, nil
}

// Login authenticates against the identity provider and re-signs a local
// bearer token with the service secret.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, errors.NewValidationError("email and password are required", nil)
	}

	token, err := s.client.Login(ctx, s.keycloak.ClientID, s.keycloak.ClientSecret, s.keycloak.Realm, email, password)
	if err != nil {
		return nil, errors.NewAuthError("login failed", err)
	}

	info, err := s.client.GetUserInfo(ctx, token.AccessToken, s.keycloak.Realm)
	if err != nil || info.Sub == nil {
		return nil, errors.NewAuthError("failed to resolve user info", err)
	}

	user := User{
		Email:  email,
		Role:   s.lookupRole(ctx, *info.Sub),
		UserID: *info.Sub,
	}

	localToken, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: localToken,
		User:  user,
		ProviderTokens: ProviderTokens{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			IDToken:      token.IDToken,
		},
	}, nil
}

// lookupRole reads the role attribute set at registration. Failures
// degrade to the default role rather than blocking the login.
func (s *Service) lookupRole(ctx context.Context, userID string) string {
	admin, err := s.client.LoginAdmin(ctx, s.keycloak.AdminUser, s.keycloak.AdminPass, s.keycloak.Realm)
	if err != nil {
		nuts.L.Warnf("[Auth] Admin login for role lookup failed: %v", err)
		return defaultRole
	}

	user, err := s.client.GetUserByID(ctx, admin.AccessToken, s.keycloak.Realm, userID)
	if err != nil || user.Attributes == nil {
		return defaultRole
	}
	if roles, ok := (*user.Attributes)["role"]; ok && len(roles) > 0 && roles[0] != "" {
		return roles[0]
	}
	return defaultRole
}

// IssueToken signs the local bearer token for a resolved user.
func (s *Service) IssueToken(user User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:  user.Email,
		Role:   user.Role,
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "wastehub",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken validates a local bearer token and returns its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.NewAuthError("invalid token", err)
	}
	if !token.Valid {
		return nil, errors.NewAuthError("invalid token", nil)
	}
	return claims, nil
}

// ExtractBearer pulls the token out of an Authorization header value.
func ExtractBearer(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
