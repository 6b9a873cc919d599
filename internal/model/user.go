package model

// User represents a registered member of the platform
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	LastName    string `json:"last_name"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"description" gorm:"type:text"`
	Password    string `json:"-"` // bcrypt hash, never exposed in JSON responses

	Interests []Interest `json:"interests,omitempty" gorm:"many2many:user_interests"`
}

// PublicProfile is the subset of user fields safe to denormalize into
// event and comment views.
type PublicProfile struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// Public returns the user's public profile snapshot.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Name:        u.Name,
		LastName:    u.LastName,
		City:        u.City,
		Country:     u.Country,
		Description: u.Description,
	}
}
