package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventshare-service/internal/model"

	"gorm.io/gorm"
)

// CommentService is the append-only per-event discussion log.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Add appends a comment with a server-assigned timestamp. The body must
// be non-empty and the event must exist.
func (s *CommentService) Add(ctx context.Context, eventID, authorID uint, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body", ErrValidation)
	}

	var event model.Event
	if err := s.db.WithContext(ctx).Select("id").First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup event: %w", err)
	}

	comment := model.Comment{Body: body, EventID: eventID, UserID: authorID}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// List returns the event's comments, oldest first, each carrying a
// snapshot of the author's public profile.
func (s *CommentService) List(ctx context.Context, eventID uint) ([]CommentView, error) {
	var comments []model.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, commentView(&comments[i], comments[i].User.Public()))
	}
	return views, nil
}
