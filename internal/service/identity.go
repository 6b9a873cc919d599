package service

import (
	"context"
	"errors"
	"fmt"

	"eventshare-service/internal/model"

	"gorm.io/gorm"
)

// IdentityService maps bearer tokens to users for every gated request.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Resolve looks up a token by its uuid and returns the associated user.
// An unknown or empty token resolves to anonymous (nil, nil) — callers
// decide whether anonymous is acceptable. The lookup is a single indexed
// read with no side effects.
func (s *IdentityService) Resolve(ctx context.Context, uuid string) (*model.User, error) {
	if uuid == "" {
		return nil, nil
	}

	var token model.Token
	err := s.db.WithContext(ctx).Preload("User").Where("uuid = ?", uuid).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	return &token.User, nil
}
