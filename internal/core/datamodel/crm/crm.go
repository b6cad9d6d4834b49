package crm

import "time"

type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" gorm:"column:user_id;not null;index"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	Email     *string   `json:"email" gorm:"column:email"`
	Phone     *string   `json:"phone" gorm:"column:phone"`
	Address   *string   `json:"address" gorm:"column:address"`
	Type      *string   `json:"type" gorm:"column:type"`
	Notes     *string   `json:"notes" gorm:"column:notes"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) OwnerID() int64 { return c.UserID }

type Complaint struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"userId" gorm:"column:user_id;not null;index"`
	CustomerID  *int64     `json:"customerId" gorm:"column:customer_id"`
	Subject     string     `json:"subject" gorm:"column:subject;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	Status      string     `json:"status" gorm:"column:status;not null"`
	Priority    string     `json:"priority" gorm:"column:priority;not null"`
	ResolvedAt  *time.Time `json:"resolvedAt" gorm:"column:resolved_at"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Complaint) TableName() string { return "complaints" }

func (c Complaint) OwnerID() int64 { return c.UserID }
