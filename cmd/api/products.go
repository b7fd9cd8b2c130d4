package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bazaar/internal/domain/products"
	"bazaar/internal/params"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CreateProductPayload struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url,max=1000"`
	Category    string          `json:"category" validate:"required,max=100"`
	Location    string          `json:"location" validate:"required,max=200"`
}

type UpdateProductPayload struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Status      *products.Status `json:"status" validate:"omitempty,oneof=Active Archived"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url,max=1000"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Location    *string          `json:"location" validate:"omitempty,min=1,max=200"`
}

func (p UpdateProductPayload) patch() products.Patch {
	return products.Patch{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      p.Status,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Location:    p.Location,
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// createProductHandler godoc
//
//	@Summary		Create a product
//	@Description	Lists a new Active product under the caller's seller profile.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateProductPayload	true	"Product"
//	@Success		201		{object}	products.Product
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"Not a seller"
//	@Failure		404		{object}	ErrorResponse	"Seller profile missing"
//	@Security		ApiKeyAuth
//	@Router			/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	claims := getClaimsFromContext(r)

	var payload CreateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	profile, err := app.resolver.RequireSellerProfile(r.Context(), claims.SubjectID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	p := &products.Product{
		SellerProfileID: profile.ID,
		BrandName:       profile.BrandName,
		Name:            strings.TrimSpace(payload.Name),
		Description:     strings.TrimSpace(payload.Description),
		Price:           payload.Price,
		Stock:           payload.Stock,
		Status:          products.StatusActive,
		ImageURL:        strings.TrimSpace(payload.ImageURL),
		Category:        strings.TrimSpace(payload.Category),
		Location:        strings.TrimSpace(payload.Location),
	}
	if p.ImageURL == "" {
		p.ImageURL = products.PlaceholderImage(p.Name)
	}

	if err := app.store.Products.Create(r.Context(), p); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/products/%d", p.ID))
	if err := app.jsonResponse(w, http.StatusCreated, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listProductsHandler godoc
//
//	@Summary		Browse the marketplace
//	@Description	Active products, newest first. q matches name or description, location is a substring match, category is exact.
//	@Tags			products
//	@Produce		json
//	@Param			q			query		string	false	"Search text"
//	@Param			location	query		string	false	"Location"
//	@Param			category	query		string	false	"Category"
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			limit		query		int		false	"Page size (default 15, max 30)"
//	@Success		200			{object}	map[string]any
//	@Failure		500			{object}	ErrorResponse
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	filter := products.Filter{
		Query:    q.Get("q"),
		Location: q.Get("location"),
		Category: q.Get("category"),
	}

	list, total, err := app.store.Products.ListActive(r.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if list == nil {
		list = []*products.Product{}
	}

	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"products":   list,
		"pagination": p,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myProductsHandler godoc
//
//	@Summary		List own products
//	@Description	Every product of the caller's seller profile, Archived included.
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		products.Product
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse	"Seller profile missing"
//	@Security		ApiKeyAuth
//	@Router			/products/my-products [get]
func (app *application) myProductsHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.resolver.RequireSellerProfile(r.Context(), getClaimsFromContext(r).SubjectID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	list, err := app.store.Products.ListBySeller(r.Context(), profile.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if list == nil {
		list = []*products.Product{}
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary		Get a product
//	@Tags			products
//	@Produce		json
//	@Param			productID	path		int	true	"Product ID"
//	@Success		200			{object}	products.Product
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProductHandler godoc
//
//	@Summary		Update a product
//	@Description	Partial update; omitted fields keep their value. Only the owning seller may update.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		int						true	"Product ID"
//	@Param			payload		body		UpdateProductPayload	true	"Fields to change"
//	@Success		200			{object}	products.Product
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/products/{productID} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p, err := app.resolver.RequireProductOwner(r.Context(), getClaimsFromContext(r), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	p.Apply(payload.patch())

	if err := app.store.Products.Update(r.Context(), p); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, p); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteProductHandler godoc
//
//	@Summary		Delete a product
//	@Description	Existing orders keep their line items.
//	@Tags			products
//	@Produce		json
//	@Param			productID	path		int	true	"Product ID"
//	@Success		200			{object}	map[string]string
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/products/{productID} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.resolver.RequireProductOwner(r.Context(), getClaimsFromContext(r), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.store.Products.Delete(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "product deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
