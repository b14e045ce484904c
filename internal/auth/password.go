package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/serrors"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = serrors.With(serrors.ErrUnauthorized, "invalid email or password")
	ErrWeakPassword       = serrors.With(serrors.ErrInvalidInput, "password must be at least %d characters", MinPasswordLength)
	ErrMissingFields      = serrors.With(serrors.ErrInvalidInput, "name, email, mobile and password are required")
	ErrInvalidEmail       = serrors.With(serrors.ErrInvalidInput, "invalid email format")
	ErrInvalidMobile      = serrors.With(serrors.ErrInvalidInput, "mobile number must be 10 digits")
	ErrEmailExists        = serrors.With(serrors.ErrConflict, "email already registered")
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy of the authenticator hashing with the given bcrypt
// cost. Tests use bcrypt.MinCost to keep registration fast.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: a.storage, cost: cost}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// ValidateRegistration checks the registration fields without touching storage.
func ValidateRegistration(reg Registration) error {
	if strings.TrimSpace(reg.Name) == "" || reg.Email == "" || reg.Mobile == "" || reg.Password == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(NormalizeEmail(reg.Email)) {
		return ErrInvalidEmail
	}
	if !mobilePattern.MatchString(reg.Mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*models.User, error) {
	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}
	if err := a.ValidateCredential(reg.Password); err != nil {
		return nil, err
	}
	email := NormalizeEmail(reg.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(strings.TrimSpace(reg.Name), email, reg.Mobile, string(hashedPassword))

	// The unique index on email settles concurrent registrations.
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if serrors.KindOf(err) == serrors.ErrConflict {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if serrors.KindOf(err) == serrors.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
