package user

import "time"

// User is the business account that owns every other record.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"column:username;uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"column:password;not null"`
	CompanyName  string    `json:"companyName" gorm:"column:company_name;not null"`
	BusinessType *string   `json:"businessType" gorm:"column:business_type"`
	WebLink      *string   `json:"webLink" gorm:"column:web_link"`
	Logo         *string   `json:"logo" gorm:"column:logo"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string { return "users" }

// Session backs an issued token; deleting the row revokes the token.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    int64     `json:"userId" gorm:"column:user_id;not null;index"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Session) TableName() string { return "sessions" }

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
