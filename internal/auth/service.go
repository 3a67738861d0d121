package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"studynotes/internal/apperror"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedFunc creates per-user starter data inside the registration transaction.
type SeedFunc func(tx *gorm.DB, userID uint64) error

type Service struct {
	DB   *gorm.DB
	JWT  *JWT
	Seed SeedFunc
	Log  *zap.Logger

	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is returned by Register and Login.
type Session struct {
	PublicUser
	Token string `json:"token"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Register creates the user and its seed data atomically and returns a
// session for the new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return Session{}, apperror.NewValidation("name, valid email and a password of at least 6 characters are required", err)
	}

	hash, err := HashPassword(in.Password, s.HashCost)
	if err != nil {
		return Session{}, apperror.New(apperror.Unknown, "failed to register user", err)
	}

	u := User{Name: in.Name, Email: in.Email, PasswordHash: hash, CreatedAt: time.Now().UTC()}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&User{}).Where("email = ?", in.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperror.NewDuplicateUser(apperror.MsgUserExists)
		}

		if err := tx.Create(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.NewDuplicateUser(apperror.MsgUserExists)
			}
			return err
		}

		if s.Seed != nil {
			return s.Seed(tx, u.ID)
		}
		return nil
	})
	if err != nil {
		if apperror.Is(err, apperror.DuplicateUser) {
			return Session{}, err
		}
		s.logger().Error("register failed", zap.String("email", in.Email), zap.Error(err))
		return Session{}, apperror.NewStoreUnavailable("failed to register user", err)
	}

	token, err := s.JWT.Sign(u.ID)
	if err != nil {
		return Session{}, apperror.New(apperror.Unknown, "failed to issue token", err)
	}

	s.logger().Info("user registered", zap.Uint64("user_id", u.ID))
	return Session{PublicUser: u.Public(), Token: token}, nil
}

// Login never reveals whether the email exists.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, apperror.NewInvalidCredentials()
	}

	var u User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, apperror.NewInvalidCredentials()
		}
		s.logger().Error("login lookup failed", zap.Error(err))
		return Session{}, apperror.NewStoreUnavailable("failed to log in", err)
	}
	if !ComparePassword(u.PasswordHash, in.Password) {
		return Session{}, apperror.NewInvalidCredentials()
	}

	token, err := s.JWT.Sign(u.ID)
	if err != nil {
		return Session{}, apperror.New(apperror.Unknown, "failed to issue token", err)
	}
	return Session{PublicUser: u.Public(), Token: token}, nil
}

// IssueToken signs a fresh token for userID.
func (s *Service) IssueToken(userID uint64) (string, error) {
	return s.JWT.Sign(userID)
}

// ValidateToken resolves a bearer token to the user it was issued for.
// A valid signature for a deleted user is still Unauthenticated.
func (s *Service) ValidateToken(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.NewUnauthenticated("not authorized", nil)
	}

	uid, err := s.JWT.Verify(token)
	if err != nil {
		return nil, apperror.NewUnauthenticated("invalid token", err)
	}

	var u User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewUnauthenticated("user not found", err)
		}
		s.logger().Error("token user lookup failed", zap.Uint64("user_id", uid), zap.Error(err))
		return nil, apperror.NewStoreUnavailable("failed to authorize request", err)
	}
	u.PasswordHash = ""
	return &u, nil
}
