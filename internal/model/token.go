package model

import (
	"crypto/rand"
	"encoding/hex"
)

// Token is an opaque bearer credential. The unique index on UserID keeps
// the invariant of at most one live token per user; the loser of a
// concurrent login re-reads the row that landed.
type Token struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UUID   string `json:"uuid" gorm:"uniqueIndex;not null"`
	UserID uint   `json:"user_id" gorm:"uniqueIndex;not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// NewTokenValue mints a random 128-bit token value, hex-encoded.
func NewTokenValue() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
