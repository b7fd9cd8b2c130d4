package main

import (
	"net/http"

	"bazaar/internal/domain/orders"
	"bazaar/internal/lifecycle"
	"bazaar/internal/params"

	"github.com/shopspring/decimal"
)

type OrderItemPayload struct {
	ProductID       int64           `json:"product_id" validate:"required,gt=0"`
	ProductName     string          `json:"product_name" validate:"max=200"`
	Quantity        int             `json:"quantity" validate:"required,gte=1"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase" validate:"required,gt=0"`
}

type CreateOrderPayload struct {
	Items           []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
	TotalAmount     decimal.Decimal    `json:"total_amount" validate:"required,gt=0"`
	ShippingAddress string             `json:"shipping_address" validate:"required,max=500"`
	Contact         string             `json:"contact" validate:"required,max=50"`
}

type UpdateOrderStatusPayload struct {
	Status   string `json:"status" validate:"required"`
	Revision *int   `json:"revision,omitempty" validate:"omitempty,gte=1"`
}

// createOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Creates a Pending order. Prices are taken as sent.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateOrderPayload	true	"Order"
//	@Success		201		{object}	orders.Order
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"Not a shopkeeper"
//	@Security		ApiKeyAuth
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateOrderPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	in := lifecycle.CreateInput{
		Items:           make([]orders.Item, 0, len(payload.Items)),
		TotalAmount:     payload.TotalAmount,
		ShippingAddress: payload.ShippingAddress,
		Contact:         payload.Contact,
	}
	for _, it := range payload.Items {
		in.Items = append(in.Items, orders.Item{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}

	o, err := app.engine.Create(r.Context(), getClaimsFromContext(r).SubjectID, in)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, o); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myOrdersHandler godoc
//
//	@Summary		List own orders
//	@Description	Orders placed by the caller, newest first.
//	@Tags			orders
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Page size"
//	@Success		200		{object}	map[string]any
//	@Failure		401		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/orders/my-orders [get]
func (app *application) myOrdersHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.engine.ListForCustomer(r.Context(), getClaimsFromContext(r).SubjectID, lifecycle.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	app.writeOrderList(w, r, list, total, p)
}

// receivedOrdersHandler godoc
//
//	@Summary		List received orders
//	@Description	Orders containing at least one of the caller's products.
//	@Tags			orders
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Page size"
//	@Success		200		{object}	map[string]any
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Seller profile missing"
//	@Security		ApiKeyAuth
//	@Router			/orders/received [get]
func (app *application) receivedOrdersHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.engine.ListForSeller(r.Context(), getClaimsFromContext(r).SubjectID, lifecycle.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	app.writeOrderList(w, r, list, total, p)
}

func (app *application) writeOrderList(w http.ResponseWriter, r *http.Request, list []*orders.Order, total int, p params.Pagination) {
	if list == nil {
		list = []*orders.Order{}
	}
	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"orders":     list,
		"pagination": p,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderStatusHandler godoc
//
//	@Summary		Change order status
//	@Description	Pending -> Shipped -> Delivered, or Cancelled from Pending/Shipped. Any seller with a product in the order may do this. Send the revision you read to guard against concurrent edits.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			orderID	path		int							true	"Order ID"
//	@Param			payload	body		UpdateOrderStatusPayload	true	"New status"
//	@Success		200		{object}	orders.Order
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Modified concurrently"
//	@Failure		422		{object}	ErrorResponse	"Transition not allowed"
//	@Security		ApiKeyAuth
//	@Router			/orders/{orderID} [put]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "orderID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateOrderStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	o, err := app.engine.Transition(r.Context(), getClaimsFromContext(r), id, payload.Status, payload.Revision)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, o); err != nil {
		app.internalServerError(w, r, err)
	}
}
