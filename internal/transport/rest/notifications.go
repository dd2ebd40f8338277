package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/internal/service/notify"
)

// notifyService defines the minimal interface needed by NotificationHandler.
type notifyService interface {
	ListMine(ctx context.Context) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	CreateNotice(ctx context.Context, input notify.CreateNoticeInput) (*domain.Notification, error)
}

// NotificationHandler serves the notification REST endpoints.
type NotificationHandler struct {
	svc notifyService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notifyService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notifications")}
}

type createNoticeRequest struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	Message    string `json:"message"`
}

type notificationResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	CreatedBy  string     `json:"createdBy"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

// ListMine handles GET /api/notifications.
func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.svc.ListMine(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, unreadCountResponse{Count: count})
}

// MarkRead handles PATCH /api/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateNotice handles POST /api/notifications. Manager only.
func (h *NotificationHandler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var req createNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	created, err := h.svc.CreateNotice(r.Context(), notify.CreateNoticeInput{
		EmployeeID: employeeID,
		Type:       domain.NotificationType(req.Type),
		Message:    req.Message,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNotificationResponse(created))
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID.String(),
		Type:       n.Type.String(),
		Title:      n.Title,
		Message:    n.Message,
		CreatedBy:  n.CreatedBy.String(),
		CreatedAt:  n.CreatedAt,
		ReadAt:     n.ReadAt,
	}
}
