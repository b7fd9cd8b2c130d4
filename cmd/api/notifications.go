package main

import (
	"net/http"

	"bazaar/internal/domain/inbox"
	"bazaar/internal/notifications"
)

// listNotificationsHandler godoc
//
//	@Summary		Recent notifications
//	@Description	The 10 newest notifications. Without category, sellers get new_order and shopkeepers get order_update.
//	@Tags			notifications
//	@Produce		json
//	@Param			category	query		string	false	"new_order or order_update"
//	@Success		200			{object}	map[string]any
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/notifications [get]
func (app *application) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := getClaimsFromContext(r)

	category := notifications.DefaultCategory(claims.Role)
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := inbox.ParseCategory(raw)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		category = c
	}

	list, err := app.dispatcher.FetchRecent(r.Context(), claims.SubjectID, category)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	unread, err := app.dispatcher.UnreadCount(r.Context(), claims.SubjectID, category)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"notifications": list,
		"unread":        unread,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// markNotificationsReadHandler godoc
//
//	@Summary		Mark all notifications read
//	@Tags			notifications
//	@Produce		json
//	@Success		200	{object}	map[string]int64
//	@Failure		401	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/notifications/read [post]
func (app *application) markNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	n, err := app.dispatcher.MarkAllRead(r.Context(), getClaimsFromContext(r).SubjectID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]int64{"updated": n}); err != nil {
		app.internalServerError(w, r, err)
	}
}
