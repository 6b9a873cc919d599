package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventshare-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventService owns event lifecycle and the composed event views.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// EventInput carries the mutable event fields for create and edit.
type EventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Time        time.Time `json:"time"`
	Date        time.Time `json:"date"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CategoryIDs []uint    `json:"categories"`
}

// Create persists the event, registers the creator as its first attendee
// and links the supplied categories, all in one transaction.
func (s *EventService) Create(ctx context.Context, creatorID uint, in EventInput) (*model.Event, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrValidation)
	}

	event := model.Event{
		CreatorID:   creatorID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Time:        in.Time,
		Date:        in.Date,
		Lat:         in.Lat,
		Lng:         in.Lng,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		attendance := model.Attendance{EventID: event.ID, UserID: creatorID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attendance).Error; err != nil {
			return fmt.Errorf("register creator attendance: %w", err)
		}

		return replaceCategories(tx, &event, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update replaces the mutable fields. Only the creator may edit; the
// category link set is swapped within the same transaction.
func (s *EventService) Update(ctx context.Context, eventID, editorID uint, in EventInput) (*model.Event, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrValidation)
	}

	var event model.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup event: %w", err)
		}
		if event.CreatorID != editorID {
			return ErrForbidden
		}

		updates := map[string]interface{}{
			"title":       in.Title,
			"description": in.Description,
			"image_url":   in.ImageURL,
			"address":     in.Address,
			"city":        in.City,
			"country":     in.Country,
			"time":        in.Time,
			"date":        in.Date,
			"lat":         in.Lat,
			"lng":         in.Lng,
		}
		if err := tx.Model(&event).Updates(updates).Error; err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		return replaceCategories(tx, &event, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func replaceCategories(tx *gorm.DB, event *model.Event, categoryIDs []uint) error {
	var categories []model.Category
	if len(categoryIDs) > 0 {
		if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return fmt.Errorf("lookup categories: %w", err)
		}
	}
	if err := tx.Model(event).Association("Categories").Replace(categories); err != nil {
		return fmt.Errorf("replace categories: %w", err)
	}
	return nil
}

// Get composes the full single-event view: creator profile, categories,
// attendee list and comments.
func (s *EventService) Get(ctx context.Context, eventID uint) (*EventView, error) {
	var event model.Event
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Preload("Categories").
		First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup event: %w", err)
	}

	var attendees []model.User
	err = s.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN attendances ON attendances.user_id = users.id").
		Where("attendances.event_id = ?", event.ID).
		Order("attendances.created_at").
		Find(&attendees).Error
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}

	var comments []model.Comment
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", event.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	view := eventView(&event, event.Creator.Public(), int64(len(attendees)))
	for _, a := range attendees {
		view.Attendees = append(view.Attendees, a.Public())
	}
	for i := range comments {
		view.Comments = append(view.Comments, commentView(&comments[i], comments[i].User.Public()))
	}
	return &view, nil
}

// List returns the composed view of every event.
func (s *EventService) List(ctx context.Context) ([]EventView, error) {
	return s.list(ctx, s.db.WithContext(ctx))
}

// ListByCity returns the composed views of events in one city.
func (s *EventService) ListByCity(ctx context.Context, city string) ([]EventView, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("city = ?", city))
}

func (s *EventService) list(ctx context.Context, q *gorm.DB) ([]EventView, error) {
	var events []model.Event
	err := q.
		Preload("Creator").
		Preload("Categories").
		Order("events.created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	views := make([]EventView, 0, len(events))
	for i := range events {
		var count int64
		err := s.db.WithContext(ctx).
			Model(&model.Attendance{}).
			Where("event_id = ?", events[i].ID).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("count attendance: %w", err)
		}
		views = append(views, eventView(&events[i], events[i].Creator.Public(), count))
	}
	return views, nil
}

// Categories returns the static category reference list.
func (s *EventService) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
