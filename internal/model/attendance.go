package model

import "time"

// Attendance records that a user intends to participate in an event.
// The composite unique index makes repeated joins a no-op.
type Attendance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"event_id" gorm:"uniqueIndex:idx_attendances_event_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_attendances_event_user;not null"`
	CreatedAt time.Time `json:"created_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}
