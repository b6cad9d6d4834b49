package accounting

import (
	"time"

	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	"github.com/frahmantamala/bizmanager/internal/resource"
)

// CreateFinancialRecordDTO represents a single income or expense entry.
type CreateFinancialRecordDTO struct {
	Type        string     `json:"type" validate:"required,oneof=income expense"`
	Category    *string    `json:"category"`
	Amount      string     `json:"amount" validate:"required,numeric"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

func (dto *CreateFinancialRecordDTO) ToDataModel(ownerID int64) *accountingDatamodel.FinancialRecord {
	return &accountingDatamodel.FinancialRecord{
		UserID:      ownerID,
		Type:        dto.Type,
		Category:    dto.Category,
		Amount:      dto.Amount,
		Description: dto.Description,
		Date:        dto.Date,
	}
}

type CreateBudgetDTO struct {
	Name         string     `json:"name" validate:"required"`
	Amount       string     `json:"amount" validate:"required,numeric"`
	Spent        string     `json:"spent" validate:"omitempty,numeric"`
	DepartmentID *int64     `json:"departmentId"`
	ProjectID    *int64     `json:"projectId"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

func (dto *CreateBudgetDTO) ToDataModel(ownerID int64) *accountingDatamodel.Budget {
	return &accountingDatamodel.Budget{
		UserID:       ownerID,
		Name:         dto.Name,
		Amount:       dto.Amount,
		Spent:        resource.Default(dto.Spent, "0"),
		DepartmentID: dto.DepartmentID,
		ProjectID:    dto.ProjectID,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
	}
}
