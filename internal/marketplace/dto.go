package marketplace

import (
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
)

// CreateProductDTO represents the request payload for listing a product.
// Price and revenue are decimal strings, e.g. "19.99".
type CreateProductDTO struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Price       *string `json:"price" validate:"omitnil,numeric"`
	Category    *string `json:"category"`
	Inventory   int64   `json:"inventory" validate:"gte=0"`
	Image       *string `json:"image"`
	IsPublished bool    `json:"isPublished"`
	Sales       *int64  `json:"sales" validate:"omitnil,gte=0"`
	Revenue     *string `json:"revenue" validate:"omitnil,numeric"`
}

func (dto *CreateProductDTO) ToDataModel(ownerID int64) *marketplaceDatamodel.Product {
	return &marketplaceDatamodel.Product{
		UserID:      ownerID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
		Inventory:   dto.Inventory,
		Image:       dto.Image,
		IsPublished: dto.IsPublished,
		Sales:       dto.Sales,
		Revenue:     dto.Revenue,
	}
}
