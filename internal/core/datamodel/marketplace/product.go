package marketplace

import "time"

// Product prices and revenue are decimal strings so no precision is lost.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"userId" gorm:"column:user_id;not null;index"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description *string   `json:"description" gorm:"column:description"`
	Price       *string   `json:"price" gorm:"column:price"`
	Category    *string   `json:"category" gorm:"column:category"`
	Inventory   int64     `json:"inventory" gorm:"column:inventory;not null"`
	Image       *string   `json:"image" gorm:"column:image"`
	IsPublished bool      `json:"isPublished" gorm:"column:is_published;not null"`
	Sales       *int64    `json:"sales" gorm:"column:sales"`
	Revenue     *string   `json:"revenue" gorm:"column:revenue"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Product) TableName() string { return "products" }

func (p Product) OwnerID() int64 { return p.UserID }
