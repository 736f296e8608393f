package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/responses"
	"github.com/Ivnfdzz/PickNPlay-sub000/api/validators"
	ordersvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/orders"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
)

// SubmitOrder handles the public customer checkout. No authentication:
// the kiosk posts on behalf of a walk-in customer.
func SubmitOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload submitOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// ListOrders serves the staff order listing, optionally filtered by a
// customer name search term.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		limit := queryLimit(r)
		if term := r.URL.Query().Get("q"); term != "" {
			orders, err := svc.Search(r.Context(), term, limit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, orders)
			return
		}

		orders, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// SearchOrders requires a customer name term.
func SearchOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orders, err := svc.Search(r.Context(), r.URL.Query().Get("q"), queryLimit(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// GetOrder serves a single order with its lines.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type submitOrderRequest struct {
	CustomerName    string                   `json:"customer_name" validate:"required"`
	PaymentMethodID string                   `json:"payment_method_id" validate:"required,uuid"`
	Lines           []submitOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type submitOrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (r submitOrderRequest) toInput() (ordersvc.SubmitOrderInput, error) {
	methodID, err := uuid.Parse(r.PaymentMethodID)
	if err != nil {
		return ordersvc.SubmitOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method id")
	}

	lines := make([]ordersvc.SubmitOrderLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return ordersvc.SubmitOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		lines = append(lines, ordersvc.SubmitOrderLine{ProductID: productID, Quantity: line.Quantity})
	}

	return ordersvc.SubmitOrderInput{
		CustomerName:    r.CustomerName,
		PaymentMethodID: methodID,
		Lines:           lines,
	}, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}

func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
