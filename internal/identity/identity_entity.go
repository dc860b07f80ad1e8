package identity

import "time"

type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return true
	default:
		return false
	}
}

// Profile is owned by the registration flow. This service only reads it.
type Profile struct {
	UserID    string   `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Name      string   `gorm:"column:name;not null"`
	Role      Role     `gorm:"column:role;type:varchar(20);not null;index"`
	Mobile    string   `gorm:"column:mobile"`
	Email     string   `gorm:"column:email"`
	Lat       *float64 `gorm:"column:lat"`
	Lng       *float64 `gorm:"column:lng"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "user_profiles"
}
