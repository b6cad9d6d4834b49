package accounting

import "time"

const (
	RecordTypeIncome  = "income"
	RecordTypeExpense = "expense"
)

// Amounts are decimal strings.
type FinancialRecord struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Type        string     `json:"type" gorm:"column:type;not null"`
	Category    *string    `json:"category" gorm:"column:category"`
	Amount      string     `json:"amount" gorm:"column:amount;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	Date        *time.Time `json:"date" gorm:"column:date"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (FinancialRecord) TableName() string { return "financial_records" }

func (f FinancialRecord) OwnerID() int64 { return f.UserID }

type Budget struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Name         string     `json:"name" gorm:"column:name;not null"`
	Amount       string     `json:"amount" gorm:"column:amount;not null"`
	Spent        string     `json:"spent" gorm:"column:spent;not null"`
	DepartmentID *int64     `json:"departmentId" gorm:"column:department_id"`
	ProjectID    *int64     `json:"projectId" gorm:"column:project_id"`
	StartDate    *time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate      *time.Time `json:"endDate" gorm:"column:end_date"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Budget) TableName() string { return "budgets" }

func (b Budget) OwnerID() int64 { return b.UserID }
