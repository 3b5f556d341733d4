package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/internal/domain/enum"
	"github.com/jumapesa/billing-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create persists a new invoice. When no serial has been assigned it
	// allocates the next sequence within the invoice's series in the same
	// transaction as the insert.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetWithRelations loads the invoice together with its currency, bank
	// account and owning user.
	GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	// MarkMailedAndNotify transitions the invoice to mailed and persists the
	// admin notifications in one transaction: the status change and the
	// notifications commit together or not at all.
	MarkMailedAndNotify(ctx context.Context, id uuid.UUID, notifications []*entity.Notification) error
	// UpdateConverted persists the outcome of a currency conversion in a
	// single transaction: currency reference, rewritten items and the
	// recomputed monetary totals commit together or not at all.
	UpdateConverted(ctx context.Context, id uuid.UUID, currencyID uuid.UUID, items entity.LineItems, subtotal, total decimal.Decimal) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	Series     *enum.InvoiceSeries
	SortBy     string
	SortOrder  string
}
