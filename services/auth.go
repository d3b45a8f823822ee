package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"thesis-hand/models"
	"thesis-hand/storage"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// bcrypt verarbeitet höchstens 72 Bytes
const maxPasswordBytes = 72

// RegisterInput enthält die Pflichtangaben für ein neues Konto.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService verwaltet Konten und Sitzungen.
type AuthService struct {
	store  *storage.Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(store *storage.Store, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// TTL gibt die Lebensdauer einer Sitzung zurück (für das Cookie-MaxAge).
func (a *AuthService) TTL() time.Duration {
	return a.ttl
}

// Register legt das Konto an und meldet es direkt an.
func (a *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if len(in.Password) > maxPasswordBytes {
		return nil, "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Language:     "english",
	}
	if err := a.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := a.issueSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	a.logger.Info("User registered", zap.String("user_id", u.ID))
	return u, token, nil
}

// Login prüft die Zugangsdaten und vergibt eine neue Sitzung.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := a.issueSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate löst ein Sitzungstoken auf. Abgelaufene Sitzungen werden dabei gelöscht.
func (a *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	hash := hashToken(token)
	sess, err := a.store.GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !sess.ExpiresAt.After(a.now()) {
		if err := a.store.DeleteSessionByTokenHash(ctx, hash); err != nil {
			a.logger.Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, ErrUnauthorized
	}
	u, err := a.store.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}

// Logout beendet die Sitzung. Ein unbekanntes Token ist kein Fehler.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.store.DeleteSessionByTokenHash(ctx, hashToken(token))
}

func (a *AuthService) issueSession(ctx context.Context, userID string) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}
	sess := &models.Session{
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: a.now().Add(a.ttl),
	}
	if err := a.store.CreateSession(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
