package main

import (
	"fmt"
	"net/http"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/accounts"
	"bazaar/internal/provisioning"
)

type SellerProfilePayload struct {
	BrandName       string  `json:"brand_name" validate:"required,max=120"`
	BusinessAddress string  `json:"business_address" validate:"required,max=500"`
	GSTNumber       *string `json:"gst_number,omitempty" validate:"omitempty,max=15"`
}

type ShopkeeperProfilePayload struct {
	ShopName      string `json:"shop_name" validate:"required,max=120"`
	ShopAddress   string `json:"shop_address" validate:"required,max=500"`
	ContactNumber string `json:"contact_number" validate:"required,min=7,max=20"`
}

// createProfileHandler godoc
//
//	@Summary		Create own profile
//	@Description	Sellers send SellerProfilePayload, shopkeepers send ShopkeeperProfilePayload. One profile per account.
//	@Tags			profiles
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SellerProfilePayload	true	"Seller or shopkeeper profile"
//	@Success		201		{object}	profiles.SellerProfile
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Account missing"
//	@Failure		409		{object}	ErrorResponse	"Profile exists"
//	@Security		ApiKeyAuth
//	@Router			/profiles [post]
func (app *application) createProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := getClaimsFromContext(r)
	ctx := r.Context()

	var (
		profile any
		err     error
	)
	switch claims.Role {
	case accounts.RoleSeller:
		var payload SellerProfilePayload
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		if err := Validate.Struct(payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		profile, err = app.provisioner.CreateSeller(ctx, claims, provisioning.SellerInput{
			BrandName:       payload.BrandName,
			BusinessAddress: payload.BusinessAddress,
			GSTNumber:       payload.GSTNumber,
		})

	case accounts.RoleShopkeeper:
		var payload ShopkeeperProfilePayload
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		if err := Validate.Struct(payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		profile, err = app.provisioner.CreateShopkeeper(ctx, claims, provisioning.ShopkeeperInput{
			ShopName:      payload.ShopName,
			ShopAddress:   payload.ShopAddress,
			ContactNumber: payload.ContactNumber,
		})

	default:
		err = fmt.Errorf("%w: invalid role", apperr.ErrInvalidArgument)
	}

	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProfileHandler godoc
//
//	@Summary		Get own profile
//	@Tags			profiles
//	@Produce		json
//	@Success		200	{object}	profiles.SellerProfile
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profiles [get]
func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.provisioner.Get(r.Context(), getClaimsFromContext(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}
