package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventshare-service/internal/model"
	"eventshare-service/internal/notify"
	"eventshare-service/pkg/resettoken"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialService owns password hashing and bearer-token issuance.
type CredentialService struct {
	db         *gorm.DB
	reset      *resettoken.Signer
	notifier   notify.Notifier
	bcryptCost int
}

func NewCredentialService(db *gorm.DB, reset *resettoken.Signer, notifier notify.Notifier, bcryptCost int) *CredentialService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialService{db: db, reset: reset, notifier: notifier, bcryptCost: bcryptCost}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// Register creates a user with a hashed password. A second registration
// with the same email fails with ErrDuplicateEmail, whether it is seen on
// the lookup or loses the insert race against the unique index.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email", ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password", ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Name:        in.Name,
		LastName:    in.LastName,
		Email:       email,
		City:        in.City,
		Country:     in.Country,
		Description: in.Description,
		Password:    string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies the password and returns the user's live token,
// minting one if absent. Issuance is idempotent: a second login without a
// logout returns the same token value. The unique index on tokens.user_id
// settles concurrent logins; the loser re-reads the row that landed.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*model.Token, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnknownEmail
		}
		return nil, nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	var token model.Token
	err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&token).Error
	if err == nil {
		return &token, &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("lookup token: %w", err)
	}

	token = model.Token{UUID: model.NewTokenValue(), UserID: user.ID}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent login won; return its token.
			if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&token).Error; err != nil {
				return nil, nil, fmt.Errorf("re-read token after race: %w", err)
			}
			return &token, &user, nil
		}
		return nil, nil, fmt.Errorf("create token: %w", err)
	}
	return &token, &user, nil
}

// Revoke deletes the user's token. Logout with no live token is a no-op.
func (s *CredentialService) Revoke(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Token{}).Error; err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a time-boxed signed token for the email and
// hands it to the notification boundary for out-of-band delivery.
func (s *CredentialService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownEmail
		}
		return fmt.Errorf("lookup user by email: %w", err)
	}

	token, err := s.reset.Sign(user.Email)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}
	if err := s.notifier.PasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("deliver reset token: %w", err)
	}
	return nil
}

// CompletePasswordReset verifies signature and TTL before mutating the
// password. Expired and malformed tokens fail with distinct errors.
func (s *CredentialService) CompletePasswordReset(ctx context.Context, signedToken, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password", ErrValidation)
	}

	email, err := s.reset.Verify(signedToken)
	if err != nil {
		switch {
		case errors.Is(err, resettoken.ErrExpired):
			return ErrExpiredResetToken
		default:
			return ErrInvalidResetToken
		}
	}

	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownEmail
		}
		return fmt.Errorf("lookup user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password", string(hash)).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
