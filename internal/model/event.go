package model

import "time"

// Event is the core event record. Creator ownership never transfers.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatorID   uint      `json:"creator_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url"`
	Address     string    `json:"address"`
	City        string    `json:"city" gorm:"index"`
	Country     string    `json:"country"`
	Time        time.Time `json:"time"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`

	Creator    User       `json:"-" gorm:"foreignKey:CreatorID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:event_categories"`
}
