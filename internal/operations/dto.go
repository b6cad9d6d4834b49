package operations

import (
	"time"

	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	"github.com/frahmantamala/bizmanager/internal/resource"
)

const (
	TaskStatusPending     = "pending"
	TaskPriorityMedium    = "medium"
	ProjectStatusPlanning = "planning"
)

type CreateTaskDTO struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *int64     `json:"assignedTo"`
	TeamID      *int64     `json:"teamId"`
	ProjectID   *int64     `json:"projectId"`
	Category    *string    `json:"category"`
}

func (dto *CreateTaskDTO) ToDataModel(ownerID int64) *operationsDatamodel.Task {
	return &operationsDatamodel.Task{
		UserID:      ownerID,
		Title:       dto.Title,
		Description: dto.Description,
		DueDate:     dto.DueDate,
		Status:      resource.Default(dto.Status, TaskStatusPending),
		Priority:    resource.Default(dto.Priority, TaskPriorityMedium),
		AssignedTo:  dto.AssignedTo,
		TeamID:      dto.TeamID,
		ProjectID:   dto.ProjectID,
		Category:    dto.Category,
	}
}

type CreateProjectDTO struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	TeamID      *int64     `json:"teamId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (dto *CreateProjectDTO) ToDataModel(ownerID int64) *operationsDatamodel.Project {
	return &operationsDatamodel.Project{
		UserID:      ownerID,
		Name:        dto.Name,
		Description: dto.Description,
		Status:      resource.Default(dto.Status, ProjectStatusPlanning),
		TeamID:      dto.TeamID,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
	}
}

type CreateMeetingDTO struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	TeamID      *int64     `json:"teamId"`
	ProjectID   *int64     `json:"projectId"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Location    *string    `json:"location"`
}

func (dto *CreateMeetingDTO) ToDataModel(ownerID int64) *operationsDatamodel.Meeting {
	return &operationsDatamodel.Meeting{
		UserID:      ownerID,
		Title:       dto.Title,
		Description: dto.Description,
		TeamID:      dto.TeamID,
		ProjectID:   dto.ProjectID,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Location:    dto.Location,
	}
}
