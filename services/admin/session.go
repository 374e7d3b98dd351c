package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminNotConfigured = errors.New("admin not configured")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidSession     = errors.New("invalid session")
)

// sessionClaims is the whole session: a flag plus expiry.
type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.StandardClaims
}

// SessionManager checks the admin password and issues signed session tokens.
// There is a single admin identity; nothing is stored server side.
type SessionManager struct {
	password     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

type SessionConfig struct {
	Password     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}

// NewSessionManager falls back to the password as signing secret when no
// secret is configured.
func NewSessionManager(cfg SessionConfig, logger *zap.Logger) *SessionManager {
	secret := cfg.Secret
	if secret == "" {
		secret = cfg.Password + cfg.PasswordHash
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{
		password:     cfg.Password,
		passwordHash: []byte(cfg.PasswordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

func (m *SessionManager) Configured() bool {
	return m.password != "" || len(m.passwordHash) > 0
}

func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Login verifies the password and returns a session token.
func (m *SessionManager) Login(password string) (string, error) {
	if !m.Configured() {
		return "", ErrAdminNotConfigured
	}
	if !m.checkPassword(password) {
		m.logger.Warn("Admin login rejected")
		return "", ErrInvalidPassword
	}
	token, err := m.Issue()
	if err != nil {
		return "", err
	}
	m.logger.Info("Admin logged in")
	return token, nil
}

func (m *SessionManager) checkPassword(password string) bool {
	if len(m.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(m.password), []byte(password)) == 1
}

// Issue signs a fresh session valid for the configured TTL.
func (m *SessionManager) Issue() (string, error) {
	now := m.now()
	claims := sessionClaims{
		Admin: true,
		StandardClaims: jwt.StandardClaims{
			Subject:   "admin",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin session: %w", err)
	}
	return token, nil
}

// Validate accepts only unexpired HMAC-signed tokens carrying the admin flag.
func (m *SessionManager) Validate(tokenString string) error {
	if tokenString == "" || !m.Configured() {
		return ErrInvalidSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}
	if !claims.Admin || !claims.VerifyExpiresAt(m.now().Unix(), true) {
		return ErrInvalidSession
	}
	return nil
}
