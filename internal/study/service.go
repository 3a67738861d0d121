package study

import (
	"context"
	"errors"
	"strings"
	"time"

	"studynotes/internal/apperror"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service implements the owner-scoped category and note operations. Every
// query is filtered by the caller's user id; no method accepts an owner from
// the request body.
type Service struct {
	DB  *gorm.DB
	Log *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

type CategoryInput struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Icon        string `validate:"max=100"`
	Color       string `validate:"max=100"`
	TotalTopics int    `validate:"gte=0"`
}

// CategoryPatch holds the fields present in a partial update.
type CategoryPatch struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	TotalTopics *int
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Microsecond)
	}
	return time.Now().UTC().Truncate(time.Microsecond)
}

// touch returns the next updatedAt for a row last updated at prev. It is
// strictly greater than prev even when the clock has not advanced.
func (s *Service) touch(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now
}

// storeErr passes application errors through and turns everything else into
// StoreUnavailable after logging the cause.
func (s *Service) storeErr(op string, err error) error {
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		return err
	}
	s.logger().Error(op+" failed", zap.Error(err))
	return apperror.NewStoreUnavailable("failed to "+op, err)
}

func (in CategoryInput) validate() error {
	if err := validate.Struct(in); err != nil {
		return apperror.NewValidation("category needs a name and a non-negative totalTopics", err)
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context, userID uint64) ([]Category, error) {
	var rows []Category
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, s.storeErr("load categories", err)
	}
	return rows, nil
}

func (s *Service) CreateCategory(ctx context.Context, userID uint64, in CategoryInput) (Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return Category{}, err
	}

	now := s.now()
	c := Category{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		TotalTopics: in.TotalTopics,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return Category{}, s.storeErr("create category", err)
	}
	s.logger().Debug("category created", zap.Uint64("user_id", userID), zap.Uint64("category_id", c.ID))
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, userID, id uint64, p CategoryPatch) (Category, error) {
	var c Category
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &c, id, userID); err != nil {
			return notFound(err, "category not found")
		}

		if p.Name != nil {
			c.Name = strings.TrimSpace(*p.Name)
		}
		if p.Description != nil {
			c.Description = *p.Description
		}
		if p.Icon != nil {
			c.Icon = *p.Icon
		}
		if p.Color != nil {
			c.Color = *p.Color
		}
		if p.TotalTopics != nil {
			c.TotalTopics = *p.TotalTopics
		}

		in := CategoryInput{Name: c.Name, Description: c.Description, Icon: c.Icon, Color: c.Color, TotalTopics: c.TotalTopics}
		if err := in.validate(); err != nil {
			return err
		}

		c.UpdatedAt = s.touch(c.UpdatedAt)
		return tx.Save(&c).Error
	})
	if err != nil {
		return Category{}, s.storeErr("update category", err)
	}
	return c, nil
}

// DeleteCategory removes the category together with every note filed under
// it, so no orphaned notes survive the category.
func (s *Service) DeleteCategory(ctx context.Context, userID, id uint64) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Category
		if err := lockOwned(tx, &c, id, userID); err != nil {
			return notFound(err, "category not found")
		}

		res := tx.Where("category_id = ? AND user_id = ?", id, userID).Delete(&Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			s.logger().Info("cascaded notes with category",
				zap.Uint64("category_id", id), zap.Int64("notes", res.RowsAffected))
		}

		return tx.Delete(&c).Error
	})
	if err != nil {
		return s.storeErr("delete category", err)
	}
	return nil
}

// lockOwned loads the row with the given id owned by userID, locking it for
// the rest of the transaction where the dialect supports row locks.
func lockOwned(tx *gorm.DB, dest any, id, userID uint64) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(dest).Error
}

// notFound maps gorm.ErrRecordNotFound to a NotFound AppError and keeps any
// other error as is.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFound(msg)
	}
	return err
}
