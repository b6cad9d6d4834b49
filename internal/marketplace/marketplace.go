// Package marketplace serves the product catalogue.
package marketplace

import (
	"context"
	"log/slog"

	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	"github.com/frahmantamala/bizmanager/internal/resource"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

type (
	ProductService = resource.Service[*marketplaceDatamodel.Product, struct{}]
	ProductHandler = resource.Handler[*marketplaceDatamodel.Product, struct{}, CreateProductDTO]
)

func NewProductService(store storage.ProductStore, bus resource.Publisher, logger *slog.Logger) *ProductService {
	return resource.NewService("product", resource.Store[*marketplaceDatamodel.Product, struct{}]{
		Get: store.GetProduct,
		List: func(ctx context.Context, ownerID int64, _ struct{}) ([]*marketplaceDatamodel.Product, error) {
			return store.ListProducts(ctx, ownerID)
		},
		Create: store.CreateProduct,
		Update: store.UpdateProduct,
		Delete: store.DeleteProduct,
		Owner:  resource.DirectOwner[*marketplaceDatamodel.Product],
		ID:     func(p *marketplaceDatamodel.Product) int64 { return p.ID },
	}, bus, logger)
}

func NewProductHandler(base *transport.BaseHandler, service *ProductService) *ProductHandler {
	return resource.NewHandler(base, service, resource.Binding[*marketplaceDatamodel.Product, struct{}, CreateProductDTO]{
		Name:  "Product",
		Build: (*CreateProductDTO).ToDataModel,
	})
}
