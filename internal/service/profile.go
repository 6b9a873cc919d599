package service

import (
	"context"
	"errors"
	"fmt"

	"eventshare-service/internal/model"

	"gorm.io/gorm"
)

// ProfileService composes a user's cross-entity summary.
type ProfileService struct {
	db     *gorm.DB
	events *EventService
}

func NewProfileService(db *gorm.DB, events *EventService) *ProfileService {
	return &ProfileService{db: db, events: events}
}

// View assembles identity fields, interests, events created and attended
// and comments authored. Pure read.
func (s *ProfileService) View(ctx context.Context, userID uint) (*UserProfileView, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Interests").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	created, err := s.events.list(ctx, s.db.WithContext(ctx).Where("creator_id = ?", userID))
	if err != nil {
		return nil, err
	}

	attended, err := s.events.list(ctx, s.db.WithContext(ctx).
		Select("events.*").
		Joins("JOIN attendances ON attendances.event_id = events.id").
		Where("attendances.user_id = ?", userID))
	if err != nil {
		return nil, err
	}

	var comments []model.Comment
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	view := UserProfileView{
		ID:             user.ID,
		Name:           user.Name,
		LastName:       user.LastName,
		Email:          user.Email,
		City:           user.City,
		Country:        user.Country,
		Description:    user.Description,
		Interests:      user.Interests,
		EventsCreated:  created,
		EventsAttended: attended,
	}
	author := user.Public()
	for i := range comments {
		view.Comments = append(view.Comments, commentView(&comments[i], author))
	}
	return &view, nil
}

// SetInterests replaces the user's interest links as one transaction.
func (s *ProfileService) SetInterests(ctx context.Context, userID uint, interestIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup user: %w", err)
		}

		var interests []model.Interest
		if len(interestIDs) > 0 {
			if err := tx.Where("id IN ?", interestIDs).Find(&interests).Error; err != nil {
				return fmt.Errorf("lookup interests: %w", err)
			}
		}
		if err := tx.Model(&user).Association("Interests").Replace(interests); err != nil {
			return fmt.Errorf("replace interests: %w", err)
		}
		return nil
	})
}

// Interests returns the static interest reference list.
func (s *ProfileService) Interests(ctx context.Context) ([]model.Interest, error) {
	var interests []model.Interest
	if err := s.db.WithContext(ctx).Order("id").Find(&interests).Error; err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return interests, nil
}
