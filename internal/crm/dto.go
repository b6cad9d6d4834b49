package crm

import (
	"time"

	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	"github.com/frahmantamala/bizmanager/internal/resource"
)

const (
	ComplaintStatusOpen     = "open"
	ComplaintPriorityMedium = "medium"
)

// CreateCustomerDTO represents the request payload for creating a customer
type CreateCustomerDTO struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Type    *string `json:"type"`
	Notes   *string `json:"notes"`
}

func (dto *CreateCustomerDTO) ToDataModel(ownerID int64) *crmDatamodel.Customer {
	return &crmDatamodel.Customer{
		UserID:  ownerID,
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Address: dto.Address,
		Type:    dto.Type,
		Notes:   dto.Notes,
	}
}

// CreateComplaintDTO represents the request payload for logging a complaint
type CreateComplaintDTO struct {
	CustomerID  *int64     `json:"customerId"`
	Subject     string     `json:"subject" validate:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ResolvedAt  *time.Time `json:"resolvedAt"`
}

func (dto *CreateComplaintDTO) ToDataModel(ownerID int64) *crmDatamodel.Complaint {
	return &crmDatamodel.Complaint{
		UserID:      ownerID,
		CustomerID:  dto.CustomerID,
		Subject:     dto.Subject,
		Description: dto.Description,
		Status:      resource.Default(dto.Status, ComplaintStatusOpen),
		Priority:    resource.Default(dto.Priority, ComplaintPriorityMedium),
		ResolvedAt:  dto.ResolvedAt,
	}
}
