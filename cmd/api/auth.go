package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/auth"
	"bazaar/internal/domain/accounts"
)

// ErrorResponse is the envelope of every failed request.
//
//	@name			ErrorResponse
//	@description	Standard error response format returned by all endpoints
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"unauthorized"`
	Status  int    `json:"status" example:"401"`
}

type SignupPayload struct {
	FirstName string        `json:"first_name" validate:"required,max=50"`
	LastName  string        `json:"last_name" validate:"required,max=50"`
	Email     string        `json:"email" validate:"required,email,max=255"`
	Password  string        `json:"password" validate:"required,min=8,max=72"`
	Role      accounts.Role `json:"role" validate:"required,oneof=seller shopkeeper"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// signupHandler godoc
//
//	@Summary		Create an account
//	@Description	Creates a seller or shopkeeper account. The role cannot be changed later.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SignupPayload		true	"Account details"
//	@Success		201		{object}	accounts.Summary	"Account created"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Email already registered"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/auth/signup [post]
func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	account := &accounts.Account{
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Email:     strings.ToLower(strings.TrimSpace(payload.Email)),
		Role:      payload.Role,
	}
	if err := account.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Accounts.Create(r.Context(), account); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, account.Summary()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loginHandler godoc
//
//	@Summary		Log in
//	@Description	Verifies the password and sets the `token` cookie (HttpOnly, 24h). The body carries only the account summary.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	ErrorResponse	"Server misconfigured"
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	account, err := app.store.Accounts.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = accounts.CompareUnknown(payload.Password)
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := account.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated))
		return
	}

	token, expiresAt, err := app.authenticator.Issue(account.ID, account.Role)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.setTokenCookie(w, token, expiresAt)

	resp := LoginResponse{User: account.Summary()}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// LoginResponse never carries the credential; it travels only in the cookie.
type LoginResponse struct {
	User accounts.Summary `json:"user"`
}

// logoutHandler godoc
//
//	@Summary		Log out
//	@Description	Clears the `token` cookie. Issued tokens stay valid until they expire.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/auth/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   app.config.production(),
		SameSite: http.SameSiteLaxMode,
	})

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) setTokenCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   app.config.production(),
		SameSite: http.SameSiteLaxMode,
	})
}
