package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/internal/service/review"
	"github.com/workdeskhq/workdesk-backend/internal/service/triage"
)

// triageService defines the minimal interface needed for request submission
// and employee-side reads.
type triageService interface {
	Submit(ctx context.Context, input triage.SubmitInput) (*domain.Request, error)
	ListMine(ctx context.Context) ([]*domain.Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
}

// reviewService defines the minimal interface needed for the manager side.
type reviewService interface {
	Queue(ctx context.Context) ([]review.QueueItem, error)
	Decide(ctx context.Context, input review.DecideInput) (*domain.Request, error)
}

// RequestHandler serves the request lifecycle REST endpoints.
type RequestHandler struct {
	triage triageService
	review reviewService
	log    *slog.Logger
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(triageSvc triageService, reviewSvc reviewService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		triage: triageSvc,
		review: reviewSvc,
		log:    logger.With("handler", "requests"),
	}
}

type submitRequest struct {
	Type     string  `json:"type"`
	FromDate *string `json:"fromDate,omitempty"`
	ToDate   *string `json:"toDate,omitempty"`
	Reason   string  `json:"reason"`
}

type decideRequest struct {
	Decision string  `json:"decision"`
	Comment  *string `json:"comment,omitempty"`
}

type insightsResponse struct {
	CategoryReason  string   `json:"categoryReason"`
	PriorityReason  string   `json:"priorityReason"`
	IntentSignals   []string `json:"intentSignals"`
	ConfidenceScore float64  `json:"confidenceScore"`
	SuggestedAction string   `json:"suggestedAction"`
	RiskLevel       string   `json:"riskLevel"`
	BusinessImpact  string   `json:"businessImpact"`
}

type requestResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	Type       string           `json:"type"`
	FromDate   *string          `json:"fromDate,omitempty"`
	ToDate     *string          `json:"toDate,omitempty"`
	Reason     string           `json:"reason"`
	Category   string           `json:"category"`
	Priority   string           `json:"priority"`
	Status     string           `json:"status"`
	ReviewedBy *string          `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time       `json:"reviewedAt,omitempty"`
	Comment    *string          `json:"comment,omitempty"`
	Insights   insightsResponse `json:"insights"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type requesterResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

type queueItemResponse struct {
	requestResponse
	Requester *requesterResponse `json:"requester,omitempty"`
	Escalated bool               `json:"escalated"`
}

// Submit handles POST /api/requests.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fromDate, err := parseDate(req.FromDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "fromDate: expected YYYY-MM-DD")
		return
	}
	toDate, err := parseDate(req.ToDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "toDate: expected YYYY-MM-DD")
		return
	}

	created, err := h.triage.Submit(r.Context(), triage.SubmitInput{
		Type:     domain.RequestType(req.Type),
		FromDate: fromDate,
		ToDate:   toDate,
		Reason:   req.Reason,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestResponse(created))
}

// ListMine handles GET /api/requests.
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.triage.ListMine(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, toRequestResponse(req))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/requests/{id}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	req, err := h.triage.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponse(req))
}

// Queue handles GET /api/requests/queue. Manager only.
func (h *RequestHandler) Queue(w http.ResponseWriter, r *http.Request) {
	items, err := h.review.Queue(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]queueItemResponse, 0, len(items))
	for _, item := range items {
		resp := queueItemResponse{
			requestResponse: toRequestResponse(item.Request),
			Escalated:       item.Escalated,
		}
		if item.Requester != nil {
			resp.Requester = &requesterResponse{
				ID:         item.Requester.ID.String(),
				FullName:   item.Requester.FullName,
				Email:      item.Requester.Email,
				Department: item.Requester.Department,
			}
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

// Decide handles POST /api/requests/{id}/decision. Manager only.
func (h *RequestHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decided, err := h.review.Decide(r.Context(), review.DecideInput{
		RequestID: id,
		Decision:  domain.Status(req.Decision),
		Comment:   req.Comment,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponse(decided))
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func toRequestResponse(req *domain.Request) requestResponse {
	resp := requestResponse{
		ID:         req.ID.String(),
		EmployeeID: req.EmployeeID.String(),
		Type:       req.Type.String(),
		FromDate:   formatDate(req.FromDate),
		ToDate:     formatDate(req.ToDate),
		Reason:     req.Reason,
		Category:   req.Category.String(),
		Priority:   req.Priority.String(),
		Status:     req.Status.String(),
		ReviewedAt: req.ReviewedAt,
		Comment:    req.Comment,
		Insights: insightsResponse{
			CategoryReason:  req.Insights.CategoryReason,
			PriorityReason:  req.Insights.PriorityReason,
			IntentSignals:   req.Insights.IntentSignals,
			ConfidenceScore: req.Insights.ConfidenceScore,
			SuggestedAction: req.Insights.SuggestedAction.String(),
			RiskLevel:       req.Insights.RiskLevel.String(),
			BusinessImpact:  req.Insights.BusinessImpact,
		},
		CreatedAt: req.CreatedAt,
	}
	if req.ReviewedBy != nil {
		s := req.ReviewedBy.String()
		resp.ReviewedBy = &s
	}
	return resp
}
