package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
)

const sseHeartbeatInterval = 30 * time.Second

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// List implements NotificationHandler.
func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, err := claims.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	page, limit := pagination(r, 20)

	unreadOnly := false
	if flag := queryBool(r, "unreadOnly"); flag != nil {
		unreadOnly = *flag
	}

	list, err := h.notificationService.GetNotifications(r.Context(), caller.UserID, page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithPagination(w, list, response.NewPagination(page, limit, list.Total))
}

// Get implements NotificationHandler.
func (h *NotificationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := claims.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	found, err := h.notificationService.GetNotification(r.Context(), caller.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// MarkAsRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	caller, err := claims.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	updated, err := h.notificationService.MarkAsRead(r.Context(), caller.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// MarkAllAsRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	caller, err := claims.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.notificationService.MarkAllAsRead(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements NotificationHandler.
func (h *NotificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := claims.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	if err := h.notificationService.Delete(r.Context(), caller.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// Stream implements NotificationHandler. The route is guarded by the
// SSE token middleware, so only user_id is present in the claims.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	_, tokenClaims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	userID, ok := tokenClaims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cleanup := h.notificationService.Subscribe(r.Context(), userID)
	defer cleanup()

	heartbeat := time.NewTicker(sseHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
