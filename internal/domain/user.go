package domain

import "time"

type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleTopAdmin Role = "top_admin"
)

var Roles = []Role{RoleUser, RoleAdmin, RoleTopAdmin}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role may use the admin surface.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleTopAdmin
}

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Score        int       `json:"score"`
	Phone        string    `json:"phone"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatarUrl"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicProfile is the part of a User that other members and scanners may see.
type PublicProfile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Score     int    `json:"score"`
	AvatarURL string `json:"avatarUrl"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Score:     u.Score,
		AvatarURL: u.AvatarURL,
	}
}

type ProfileUpdate struct {
	Name      *string
	Phone     *string
	Bio       *string
	AvatarURL *string
}
