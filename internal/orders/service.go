package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ivnfdzz/PickNPlay-sub000/internal/catalog"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/paymentmethods"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner executes fn inside a single database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service runs customer checkout and the staff order read surface.
//
// Submit validates every line against the live catalog, freezes each
// product's current price into the line, and persists the order header
// plus all lines in one transaction. Any line failure aborts the whole
// order; a submitted order never partially exists.
type Service interface {
	Submit(ctx context.Context, input SubmitOrderInput) (*OrderReceipt, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit int) ([]models.Order, error)
	Search(ctx context.Context, term string, limit int) ([]models.Order, error)
}

type service struct {
	repo     Repository
	products catalog.ProductRepository
	payments paymentmethods.Repository
	tx       TxRunner
	logg     *logger.Logger
}

// NewService wires the order engine with its dependencies.
func NewService(repo Repository, products catalog.ProductRepository, payments paymentmethods.Repository, tx TxRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment method repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: products, payments: payments, tx: tx, logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitOrderInput) (*OrderReceipt, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	ok, err := s.payments.Exists(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check payment method")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}

	// Lines are resolved in input order so the first failing line is
	// the one reported back to the customer.
	lines := make([]models.OrderLine, 0, len(input.Lines))
	total := decimal.Zero
	for i, requested := range input.Lines {
		product, err := s.products.FindByID(ctx, requested.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("line %d: product %s not found", i, requested.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("line %d: product %q is not available for ordering", i, product.Name))
		}

		subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(requested.Quantity)))
		total = total.Add(subtotal)
		lines = append(lines, models.OrderLine{
			ID:          uuid.New(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    requested.Quantity,
			UnitPrice:   product.UnitPrice,
		})
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		Total:           total,
		PaymentMethodID: input.PaymentMethodID,
		Lines:           lines,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"lines":    len(order.Lines),
			"total":    order.Total.String(),
		})
		s.logg.Info(ctx, "order submitted")
	}

	return receiptFromOrder(order), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Order, error) {
	orders, err := s.repo.List(ctx, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Search(ctx context.Context, term string, limit int) ([]models.Order, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term required")
	}
	orders, err := s.repo.Search(ctx, term, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search orders")
	}
	return orders, nil
}

func validateSubmitInput(input SubmitOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.PaymentMethodID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method id required")
	}
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one line")
	}
	for i, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: product id required", i))
		}
		if line.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: quantity must be at least 1", i))
		}
	}
	return nil
}

func receiptFromOrder(order *models.Order) *OrderReceipt {
	receipt := &OrderReceipt{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		PaymentMethodID: order.PaymentMethodID,
		Total:           order.Total,
		Lines:           make([]ReceiptLine, 0, len(order.Lines)),
		CreatedAt:       order.CreatedAt,
	}
	for _, line := range order.Lines {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return receipt
}
