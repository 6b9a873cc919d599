package service

import (
	"time"

	"eventshare-service/internal/model"
)

// EventView is the response-shaped composition of an event with its
// creator, categories and attendance. Attendees and comments are filled
// for single-event reads only.
type EventView struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	ImageURL      string                `json:"image_url"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	Country       string                `json:"country"`
	Time          time.Time             `json:"time"`
	Date          time.Time             `json:"date"`
	CreatedAt     time.Time             `json:"created_at"`
	Lat           float64               `json:"lat"`
	Lng           float64               `json:"lng"`
	Creator       model.PublicProfile   `json:"creator"`
	Categories    []model.Category      `json:"categories"`
	AttendeeCount int64                 `json:"attendee_count"`
	Attendees     []model.PublicProfile `json:"attendees,omitempty"`
	Comments      []CommentView         `json:"comments,omitempty"`
}

// CommentView pairs a comment with a snapshot of its author's public
// profile fields.
type CommentView struct {
	ID        uint                `json:"id"`
	Body      string              `json:"body"`
	EventID   uint                `json:"event_id"`
	CreatedAt time.Time           `json:"created_at"`
	Author    model.PublicProfile `json:"author"`
}

// UserProfileView is the cross-entity summary of one user.
type UserProfileView struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	City           string           `json:"city"`
	Country        string           `json:"country"`
	Description    string           `json:"description"`
	Interests      []model.Interest `json:"interests"`
	EventsCreated  []EventView      `json:"events_created"`
	EventsAttended []EventView      `json:"events_attended"`
	Comments       []CommentView    `json:"comments"`
}

func eventView(ev *model.Event, creator model.PublicProfile, count int64) EventView {
	return EventView{
		ID:            ev.ID,
		Title:         ev.Title,
		Description:   ev.Description,
		ImageURL:      ev.ImageURL,
		Address:       ev.Address,
		City:          ev.City,
		Country:       ev.Country,
		Time:          ev.Time,
		Date:          ev.Date,
		CreatedAt:     ev.CreatedAt,
		Lat:           ev.Lat,
		Lng:           ev.Lng,
		Creator:       creator,
		Categories:    ev.Categories,
		AttendeeCount: count,
	}
}

func commentView(cm *model.Comment, author model.PublicProfile) CommentView {
	return CommentView{
		ID:        cm.ID,
		Body:      cm.Body,
		EventID:   cm.EventID,
		CreatedAt: cm.CreatedAt,
		Author:    author,
	}
}
