package service

import (
	"context"
	"errors"
	"fmt"

	"eventshare-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceService tracks who is attending which event.
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// Join registers the user for the event and returns the updated count.
// Re-joining is a no-op: the insert yields to the unique index on
// (event_id, user_id), so the count cannot grow past one row per user
// even under concurrent joins.
func (s *AttendanceService) Join(ctx context.Context, eventID, userID uint) (int64, error) {
	var event model.Event
	if err := s.db.WithContext(ctx).Select("id").First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("lookup event: %w", err)
	}

	attendance := model.Attendance{EventID: eventID, UserID: userID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&attendance).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, fmt.Errorf("create attendance: %w", err)
	}

	return s.Count(ctx, eventID)
}

// Leave removes the user's attendance. Leaving an event never joined is
// a no-op, not an error.
func (s *AttendanceService) Leave(ctx context.Context, eventID, userID uint) error {
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&model.Attendance{}).Error
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

// Count returns the number of attendees for the event.
func (s *AttendanceService) Count(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

// Attendees lists the users attending the event, oldest join first.
func (s *AttendanceService) Attendees(ctx context.Context, eventID uint) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN attendances ON attendances.user_id = users.id").
		Where("attendances.event_id = ?", eventID).
		Order("attendances.created_at").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return users, nil
}
