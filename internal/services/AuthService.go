package services

import (
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"blueghost/internal/structures"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionIssuer = "blueghost"

type AuthServiceInterface interface {
	Login(username, password string) (models.Identity, error)
	Issue(id models.Identity) (string, time.Time, error)
	Verify(token string) (models.Identity, error)
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type AuthService struct {
	credentials map[string]structures.Credential
	key         []byte
	ttl         time.Duration
	metrics     providers.MetricsProviderInterface
	logger      providers.Logger
	now         func() time.Time
}

func NewAuthService(conf *structures.Config, metrics providers.MetricsProviderInterface, logger providers.Logger) *AuthService {
	creds := make(map[string]structures.Credential, len(conf.Credentials))
	for _, c := range conf.Credentials {
		creds[c.Username] = c
	}
	return &AuthService{
		credentials: creds,
		key:         []byte(conf.Cookie.Key),
		ttl:         time.Duration(conf.Cookie.ExpiryDays) * 24 * time.Hour,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

func (a *AuthService) Login(username, password string) (models.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		a.metrics.IncLoginAttempts("missing")
		return models.Identity{}, ErrMissingCredentials
	}

	cred, ok := a.credentials[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		a.metrics.IncLoginAttempts("failure")
		a.logger.Warnf(providers.TypeAuth, "Failed login for %q", username)
		return models.Identity{}, ErrAuthFailure
	}

	a.metrics.IncLoginAttempts("success")
	a.logger.Infof(providers.TypeAuth, "User %s logged in", username)
	return identityOf(cred), nil
}

func identityOf(cred structures.Credential) models.Identity {
	name := cred.Name
	if name == "" {
		name = cred.Username
	}
	return models.Identity{DisplayName: name, Username: cred.Username}
}

// Issue signs a session token for id and returns it with its expiry.
func (a *AuthService) Issue(id models.Identity) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	claims := sessionClaims{
		Name: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Verify accepts tokens issued by Issue for users that are still configured.
func (a *AuthService) Verify(token string) (models.Identity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return a.key, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(a.now))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !parsed.Valid {
		return models.Identity{}, ErrInvalidSession
	}

	cred, ok := a.credentials[claims.Subject]
	if !ok {
		return models.Identity{}, ErrInvalidSession
	}
	return identityOf(cred), nil
}
