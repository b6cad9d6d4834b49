// Package crm serves customers and the complaints raised about them.
package crm

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bizmanager/internal"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	"github.com/frahmantamala/bizmanager/internal/resource"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

type (
	CustomerService  = resource.Service[*crmDatamodel.Customer, storage.CustomerFilter]
	CustomerHandler  = resource.Handler[*crmDatamodel.Customer, storage.CustomerFilter, CreateCustomerDTO]
	ComplaintService = resource.Service[*crmDatamodel.Complaint, storage.ComplaintFilter]
	ComplaintHandler = resource.Handler[*crmDatamodel.Complaint, storage.ComplaintFilter, CreateComplaintDTO]
)

func NewCustomerService(store storage.CustomerStore, bus resource.Publisher, logger *slog.Logger) *CustomerService {
	return resource.NewService("customer", resource.Store[*crmDatamodel.Customer, storage.CustomerFilter]{
		Get:    store.GetCustomer,
		List:   store.ListCustomers,
		Create: store.CreateCustomer,
		Update: store.UpdateCustomer,
		Delete: store.DeleteCustomer,
		Owner:  resource.DirectOwner[*crmDatamodel.Customer],
		ID:     func(c *crmDatamodel.Customer) int64 { return c.ID },
	}, bus, logger)
}

func NewCustomerHandler(base *transport.BaseHandler, service *CustomerService) *CustomerHandler {
	return resource.NewHandler(base, service, resource.Binding[*crmDatamodel.Customer, storage.CustomerFilter, CreateCustomerDTO]{
		Name:  "Customer",
		Build: (*CreateCustomerDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.CustomerFilter, *internal.AppError) {
			return storage.CustomerFilter{Type: h.QueryString(r, "type")}, nil
		},
	})
}

// NewComplaintService checks that customerId names one of the caller's customers.
func NewComplaintService(store storage.ComplaintStore, customers storage.CustomerStore, bus resource.Publisher, logger *slog.Logger) *ComplaintService {
	return resource.NewService("complaint", resource.Store[*crmDatamodel.Complaint, storage.ComplaintFilter]{
		Get:    store.GetComplaint,
		List:   store.ListComplaints,
		Create: store.CreateComplaint,
		Update: store.UpdateComplaint,
		Delete: store.DeleteComplaint,
		Owner:  resource.DirectOwner[*crmDatamodel.Complaint],
		ID:     func(c *crmDatamodel.Complaint) int64 { return c.ID },
		Links: func(c *crmDatamodel.Complaint) []resource.Link {
			return []resource.Link{resource.LinkTo("customerId", c.CustomerID, customers.GetCustomer)}
		},
	}, bus, logger)
}

func NewComplaintHandler(base *transport.BaseHandler, service *ComplaintService) *ComplaintHandler {
	return resource.NewHandler(base, service, resource.Binding[*crmDatamodel.Complaint, storage.ComplaintFilter, CreateComplaintDTO]{
		Name:  "Complaint",
		Build: (*CreateComplaintDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.ComplaintFilter, *internal.AppError) {
			customerID, appErr := h.QueryInt(r, "customerId")
			return storage.ComplaintFilter{CustomerID: customerID}, appErr
		},
	})
}
