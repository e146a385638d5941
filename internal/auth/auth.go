// ABOUTME: Local sign-up, login and session handling over the accounts document.
// ABOUTME: Passwords are bcrypt hashes; the active session carries a signed JWT.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

var (
	ErrEmailTaken     = errors.New("an account with this email already exists")
	ErrNoAccount      = errors.New("no account found with this email")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrInvalidEmail   = errors.New("email is invalid")
	ErrShortPassword  = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrNameRequired   = errors.New("name is required")
	ErrPasswordTooBig = errors.New("password must not exceed 72 bytes")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service manages accounts and the active session.
type Service struct {
	repo   storage.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a Service that signs tokens with secret.
func NewService(repo storage.Repository, secret []byte) *Service {
	return &Service{repo: repo, secret: secret, ttl: DefaultSessionTTL, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	var errs []error
	if !emailPattern.MatchString(email) {
		errs = append(errs, ErrInvalidEmail)
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, ErrShortPassword)
	}
	if len(password) > 72 {
		errs = append(errs, ErrPasswordTooBig)
	}
	return errors.Join(errs...)
}

// SignUp registers a new account and logs it in.
func (s *Service) SignUp(name, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	err := validateCredentials(email, password)
	if name == "" {
		err = errors.Join(err, ErrNameRequired)
	}
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.GetAccounts()
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if _, exists := accounts[email]; exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := models.NewAccount(name, email)
	a.PasswordHash = string(hash)
	a.RegisteredDate = s.now()
	accounts[email] = a
	if err := s.repo.SaveAccounts(accounts); err != nil {
		return nil, fmt.Errorf("save accounts: %w", err)
	}

	slog.Info("account created", "user_id", a.UserID)
	return s.startSession(a)
}

// Login checks credentials and replaces the active session.
func (s *Service) Login(email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	accounts, err := s.repo.GetAccounts()
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	a, ok := accounts[email]
	if !ok || a == nil {
		return nil, ErrNoAccount
	}

	if a.PasswordHash == "" {
		// Accounts imported from the browser still hold a plaintext password.
		if a.Password == "" || a.Password != password {
			return nil, ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		a.PasswordHash = string(hash)
		a.Password = ""
		if err := s.repo.SaveAccounts(accounts); err != nil {
			return nil, fmt.Errorf("save accounts: %w", err)
		}
		slog.Info("upgraded legacy password", "user_id", a.UserID)
	} else if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.startSession(a)
}

func (s *Service) startSession(a *models.Account) (*models.Session, error) {
	now := s.now()
	token, err := s.signToken(a.UserID, now)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		UserID:    a.UserID,
		Email:     a.Email,
		Name:      a.Name,
		LoggedIn:  true,
		LoginDate: now,
		Token:     token,
	}
	if err := s.repo.SaveSession(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Logout clears the active session. User data is kept.
func (s *Service) Logout() error {
	if err := s.repo.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the active session after verifying its token.
func (s *Service) Current() (*models.Session, error) {
	sess, err := s.repo.GetSession()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !sess.LoggedIn || sess.Token == "" {
		return nil, ErrNotLoggedIn
	}

	subject, err := s.verifyToken(sess.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}
	if subject != sess.UserID {
		return nil, fmt.Errorf("%w: token does not match session user", ErrNotLoggedIn)
	}
	return sess, nil
}

func (s *Service) signToken(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    "fittrack",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) verifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer("fittrack"),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
