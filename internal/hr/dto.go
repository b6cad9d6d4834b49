package hr

import (
	"time"

	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	"github.com/frahmantamala/bizmanager/internal/resource"
)

const EmployeeStatusActive = "active"

// CreateEmployeeDTO represents the request payload for hiring an employee
type CreateEmployeeDTO struct {
	Name         string     `json:"name" validate:"required"`
	Email        *string    `json:"email"`
	Phone        *string    `json:"phone"`
	Position     *string    `json:"position"`
	DepartmentID *int64     `json:"departmentId"`
	StartDate    *time.Time `json:"startDate"`
	Status       string     `json:"status"`
	Performance  *int64     `json:"performance" validate:"omitnil,gte=0"`
}

func (dto *CreateEmployeeDTO) ToDataModel(ownerID int64) *hrDatamodel.Employee {
	return &hrDatamodel.Employee{
		UserID:       ownerID,
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Position:     dto.Position,
		DepartmentID: dto.DepartmentID,
		StartDate:    dto.StartDate,
		Status:       resource.Default(dto.Status, EmployeeStatusActive),
		Performance:  dto.Performance,
	}
}

type CreateDepartmentDTO struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	ManagerID   *int64  `json:"managerId"`
}

func (dto *CreateDepartmentDTO) ToDataModel(ownerID int64) *hrDatamodel.Department {
	return &hrDatamodel.Department{
		UserID:      ownerID,
		Name:        dto.Name,
		Description: dto.Description,
		ManagerID:   dto.ManagerID,
	}
}

type CreateTeamDTO struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	DepartmentID *int64  `json:"departmentId"`
	LeaderID     *int64  `json:"leaderId"`
}

func (dto *CreateTeamDTO) ToDataModel(ownerID int64) *hrDatamodel.Team {
	return &hrDatamodel.Team{
		UserID:       ownerID,
		Name:         dto.Name,
		Description:  dto.Description,
		DepartmentID: dto.DepartmentID,
		LeaderID:     dto.LeaderID,
	}
}

// CreateTeamMemberDTO carries the team from the URL, not the body.
type CreateTeamMemberDTO struct {
	TeamID     int64   `json:"teamId" validate:"required"`
	EmployeeID int64   `json:"employeeId" validate:"required"`
	Role       *string `json:"role"`
}

// ToDataModel ignores ownerID; a member belongs to whoever owns its team.
func (dto *CreateTeamMemberDTO) ToDataModel(_ int64) *hrDatamodel.TeamMember {
	return &hrDatamodel.TeamMember{
		TeamID:     dto.TeamID,
		EmployeeID: dto.EmployeeID,
		Role:       dto.Role,
	}
}

// TeamMemberFilter selects the members of one team.
type TeamMemberFilter struct {
	TeamID int64
}
