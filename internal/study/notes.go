package study

import (
	"context"
	"errors"
	"strings"

	"studynotes/internal/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteInput struct {
	Title        string `validate:"required,max=300"`
	Content      string
	Tags         []string
	IsBookmarked bool
	CategoryID   uint64 `validate:"required"`
}

// NotePatch holds the fields present in a partial update.
type NotePatch struct {
	Title        *string
	Content      *string
	Tags         *[]string
	IsBookmarked *bool
	CategoryID   *uint64
}

func (in NoteInput) validate() error {
	if err := validate.Struct(in); err != nil {
		return apperror.NewValidation("note needs a title and a category", err)
	}
	return nil
}

// ownedCategory loads categoryID if it belongs to userID. Referencing another
// user's category is a validation failure, not a lookup miss.
func ownedCategory(tx *gorm.DB, userID, categoryID uint64) (Category, error) {
	var c Category
	err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, apperror.NewValidation("category not found", nil)
	}
	return c, err
}

func (s *Service) ListNotes(ctx context.Context, userID uint64) ([]Note, error) {
	var rows []Note
	if err := s.DB.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, s.storeErr("load notes", err)
	}
	for i := range rows {
		if rows[i].Tags == nil {
			rows[i].Tags = []string{}
		}
	}
	return rows, nil
}

func (s *Service) CreateNote(ctx context.Context, userID uint64, in NoteInput) (Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := in.validate(); err != nil {
		return Note{}, err
	}

	var n Note
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := ownedCategory(tx, userID, in.CategoryID)
		if err != nil {
			return err
		}

		now := s.now()
		n = Note{
			UserID:       userID,
			CategoryID:   cat.ID,
			Title:        in.Title,
			Content:      in.Content,
			Tags:         NormalizeTags(in.Tags),
			IsBookmarked: in.IsBookmarked,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Omit(clause.Associations).Create(&n).Error; err != nil {
			return err
		}
		n.Category = cat
		return nil
	})
	if err != nil {
		return Note{}, s.storeErr("create note", err)
	}
	s.logger().Debug("note created", zap.Uint64("user_id", userID), zap.Uint64("note_id", n.ID))
	return n, nil
}

func (s *Service) UpdateNote(ctx context.Context, userID, id uint64, p NotePatch) (Note, error) {
	var n Note
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &n, id, userID); err != nil {
			return notFound(err, "note not found")
		}

		if p.Title != nil {
			n.Title = strings.TrimSpace(*p.Title)
		}
		if p.Content != nil {
			n.Content = *p.Content
		}
		if p.Tags != nil {
			n.Tags = NormalizeTags(*p.Tags)
		}
		if p.IsBookmarked != nil {
			n.IsBookmarked = *p.IsBookmarked
		}
		if p.CategoryID != nil {
			n.CategoryID = *p.CategoryID
		}

		in := NoteInput{Title: n.Title, CategoryID: n.CategoryID}
		if err := in.validate(); err != nil {
			return err
		}
		cat, err := ownedCategory(tx, userID, n.CategoryID)
		if err != nil {
			return err
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}

		n.UpdatedAt = s.touch(n.UpdatedAt)
		if err := tx.Omit(clause.Associations).Save(&n).Error; err != nil {
			return err
		}
		n.Category = cat
		return nil
	})
	if err != nil {
		return Note{}, s.storeErr("update note", err)
	}
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Note{})
	if res.Error != nil {
		return s.storeErr("delete note", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFound("note not found")
	}
	return nil
}

// ToggleBookmark flips isBookmarked and bumps updatedAt; nothing else changes.
func (s *Service) ToggleBookmark(ctx context.Context, userID, id uint64) (Note, error) {
	var n Note
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &n, id, userID); err != nil {
			return notFound(err, "note not found")
		}

		n.IsBookmarked = !n.IsBookmarked
		n.UpdatedAt = s.touch(n.UpdatedAt)

		if err := tx.Model(&Note{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]any{
				"is_bookmarked": n.IsBookmarked,
				"updated_at":    n.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", n.CategoryID).Limit(1).Find(&n.Category).Error
	})
	if err != nil {
		return Note{}, s.storeErr("toggle bookmark", err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n, nil
}
