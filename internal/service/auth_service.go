package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"authd/internal/apperr"
	"authd/internal/domain"
	"authd/internal/repository"
)

// Loose by intent: presence of an @ and a dot after trimming.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthService describes the authentication workflow.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetProfile(ctx context.Context, id int64) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher passwordHasher
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{
		users:  users,
		hasher: bcryptHasher{},
	}
}

// Register validates the credentials, then creates the user with a salted
// hash. The pre-insert lookup is a fast path for a friendlier error; the
// unique index on email is what actually closes the duplicate race.
func (s *authService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.KindConflict, "Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperr.New(apperr.KindConflict, "Email already registered")
		}
		return nil, apperr.Internal(err)
	}

	return sanitizeUser(user), nil
}

// Login verifies the credentials. An unknown email and a wrong password
// produce the same error so responses never reveal which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindAuth, "Invalid credentials")
		}
		return nil, apperr.Internal(err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, apperr.New(apperr.KindAuth, "Invalid credentials")
	}

	return sanitizeUser(user), nil
}

func (s *authService) GetProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, apperr.Internal(err)
	}
	return sanitizeUser(user), nil
}

// validateCredentials runs before any store or hashing work so malformed
// input never pays the bcrypt cost.
func validateCredentials(email, password string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return apperr.New(apperr.KindValidation, "Invalid email format")
	}
	if len(password) < 6 {
		return apperr.New(apperr.KindValidation, "Password must be at least 6 characters")
	}
	return nil
}

// normalizeEmail produces the uniqueness/lookup key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) bool
}

// bcryptHasher hashes at bcrypt's default cost of 10 rounds.
type bcryptHasher struct{}

func (bcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (bcryptHasher) Compare(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
