package hr

import "time"

type Employee struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Name         string     `json:"name" gorm:"column:name;not null"`
	Email        *string    `json:"email" gorm:"column:email"`
	Phone        *string    `json:"phone" gorm:"column:phone"`
	Position     *string    `json:"position" gorm:"column:position"`
	DepartmentID *int64     `json:"departmentId" gorm:"column:department_id"`
	StartDate    *time.Time `json:"startDate" gorm:"column:start_date"`
	Status       string     `json:"status" gorm:"column:status;not null"`
	Performance  *int64     `json:"performance" gorm:"column:performance"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Employee) TableName() string { return "employees" }

func (e Employee) OwnerID() int64 { return e.UserID }

type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"userId" gorm:"column:user_id;not null;index"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description *string   `json:"description" gorm:"column:description"`
	ManagerID   *int64    `json:"managerId" gorm:"column:manager_id"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Department) TableName() string { return "departments" }

func (d Department) OwnerID() int64 { return d.UserID }

type Team struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"userId" gorm:"column:user_id;not null;index"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Description  *string   `json:"description" gorm:"column:description"`
	DepartmentID *int64    `json:"departmentId" gorm:"column:department_id"`
	LeaderID     *int64    `json:"leaderId" gorm:"column:leader_id"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Team) TableName() string { return "teams" }

func (t Team) OwnerID() int64 { return t.UserID }

// TeamMember has no owner column; it belongs to whoever owns its team.
type TeamMember struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TeamID     int64     `json:"teamId" gorm:"column:team_id;not null;index"`
	EmployeeID int64     `json:"employeeId" gorm:"column:employee_id;not null"`
	Role       *string   `json:"role" gorm:"column:role"`
	CreatedAt  time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (TeamMember) TableName() string { return "team_members" }
