// Package accounting serves the ledger of financial records and budgets.
package accounting

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bizmanager/internal"
	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	"github.com/frahmantamala/bizmanager/internal/resource"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

type (
	FinancialRecordService = resource.Service[*accountingDatamodel.FinancialRecord, storage.FinancialRecordFilter]
	FinancialRecordHandler = resource.Handler[*accountingDatamodel.FinancialRecord, storage.FinancialRecordFilter, CreateFinancialRecordDTO]
	BudgetService          = resource.Service[*accountingDatamodel.Budget, storage.BudgetFilter]
	BudgetHandler          = resource.Handler[*accountingDatamodel.Budget, storage.BudgetFilter, CreateBudgetDTO]
)

func NewFinancialRecordService(store storage.FinancialRecordStore, bus resource.Publisher, logger *slog.Logger) *FinancialRecordService {
	return resource.NewService("financial_record", resource.Store[*accountingDatamodel.FinancialRecord, storage.FinancialRecordFilter]{
		Get:    store.GetFinancialRecord,
		List:   store.ListFinancialRecords,
		Create: store.CreateFinancialRecord,
		Update: store.UpdateFinancialRecord,
		Delete: store.DeleteFinancialRecord,
		Owner:  resource.DirectOwner[*accountingDatamodel.FinancialRecord],
		ID:     func(f *accountingDatamodel.FinancialRecord) int64 { return f.ID },
	}, bus, logger)
}

func NewFinancialRecordHandler(base *transport.BaseHandler, service *FinancialRecordService) *FinancialRecordHandler {
	return resource.NewHandler(base, service, resource.Binding[*accountingDatamodel.FinancialRecord, storage.FinancialRecordFilter, CreateFinancialRecordDTO]{
		Name:  "Financial record",
		Build: (*CreateFinancialRecordDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.FinancialRecordFilter, *internal.AppError) {
			return storage.FinancialRecordFilter{Type: h.QueryString(r, "type")}, nil
		},
	})
}

func NewBudgetService(store storage.BudgetStore, departments storage.DepartmentStore, projects storage.ProjectStore, bus resource.Publisher, logger *slog.Logger) *BudgetService {
	return resource.NewService("budget", resource.Store[*accountingDatamodel.Budget, storage.BudgetFilter]{
		Get:    store.GetBudget,
		List:   store.ListBudgets,
		Create: store.CreateBudget,
		Update: store.UpdateBudget,
		Delete: store.DeleteBudget,
		Owner:  resource.DirectOwner[*accountingDatamodel.Budget],
		ID:     func(b *accountingDatamodel.Budget) int64 { return b.ID },
		Links: func(b *accountingDatamodel.Budget) []resource.Link {
			return []resource.Link{
				resource.LinkTo("departmentId", b.DepartmentID, departments.GetDepartment),
				resource.LinkTo("projectId", b.ProjectID, projects.GetProject),
			}
		},
	}, bus, logger)
}

func NewBudgetHandler(base *transport.BaseHandler, service *BudgetService) *BudgetHandler {
	return resource.NewHandler(base, service, resource.Binding[*accountingDatamodel.Budget, storage.BudgetFilter, CreateBudgetDTO]{
		Name:  "Budget",
		Build: (*CreateBudgetDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.BudgetFilter, *internal.AppError) {
			var filter storage.BudgetFilter
			var appErr *internal.AppError
			if filter.DepartmentID, appErr = h.QueryInt(r, "departmentId"); appErr != nil {
				return filter, appErr
			}
			filter.ProjectID, appErr = h.QueryInt(r, "projectId")
			return filter, appErr
		},
	})
}
