package operations

import "time"

type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Title       string     `json:"title" gorm:"column:title;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	DueDate     *time.Time `json:"dueDate" gorm:"column:due_date"`
	Status      string     `json:"status" gorm:"column:status;not null"`
	Priority    string     `json:"priority" gorm:"column:priority;not null"`
	AssignedTo  *int64     `json:"assignedTo" gorm:"column:assigned_to"`
	TeamID      *int64     `json:"teamId" gorm:"column:team_id"`
	ProjectID   *int64     `json:"projectId" gorm:"column:project_id"`
	Category    *string    `json:"category" gorm:"column:category"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Task) TableName() string { return "tasks" }

func (t Task) OwnerID() int64 { return t.UserID }

type Project struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Name        string     `json:"name" gorm:"column:name;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	Status      string     `json:"status" gorm:"column:status;not null"`
	TeamID      *int64     `json:"teamId" gorm:"column:team_id"`
	StartDate   *time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate     *time.Time `json:"endDate" gorm:"column:end_date"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Project) TableName() string { return "projects" }

func (p Project) OwnerID() int64 { return p.UserID }

type Meeting struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Title       string     `json:"title" gorm:"column:title;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	TeamID      *int64     `json:"teamId" gorm:"column:team_id"`
	ProjectID   *int64     `json:"projectId" gorm:"column:project_id"`
	StartTime   *time.Time `json:"startTime" gorm:"column:start_time"`
	EndTime     *time.Time `json:"endTime" gorm:"column:end_time"`
	Location    *string    `json:"location" gorm:"column:location"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Meeting) TableName() string { return "meetings" }

func (m Meeting) OwnerID() int64 { return m.UserID }
