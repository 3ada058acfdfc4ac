package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"tutorhub/internal/bookings/projection"
	"tutorhub/internal/bookings/service"
	"tutorhub/internal/bookings/store"
	apperrors "tutorhub/pkg/errors"
	pkghttp "tutorhub/pkg/http"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/middleware"
	"tutorhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/bookings", h.Request)
	router.HandlerFunc(http.MethodGet, "/bookings", h.List)
	router.GET("/bookings/:id", h.GetByID)
	router.POST("/bookings/:id/accept", h.Accept)
	router.POST("/bookings/:id/reject", h.Reject)
	router.POST("/bookings/:id/complete", h.Complete)
	router.HandlerFunc(http.MethodGet, "/dashboard", h.Dashboard)
}

type acceptRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Request creates a pending booking for the authenticated student.
func (h *BookingHandler) Request(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var input service.RequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	booking, err := h.service.Request(r.Context(), sess, &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteCreated(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

// List returns the caller's bookings in their session role, newest first.
// A tutor may pass ?role=student to see bookings they requested themselves.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	role := h.viewerRole(r, sess)
	bookings, err := h.service.FindForUser(r.Context(), sess.UserID, role)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, bookings); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetByID(r.Context(), sess, ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	booking, err := h.service.Accept(r.Context(), sess, ps.ByName("id"), req.Date, req.Time)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	booking, err := h.service.Reject(r.Context(), sess, ps.ByName("id"), req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Complete(r.Context(), sess, ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

type dashboardResponse struct {
	Role      model.Role        `json:"role"`
	Pending   []projection.Card `json:"pending"`
	Upcoming  []projection.Card `json:"upcoming"`
	Completed []projection.Card `json:"completed"`
	Expired   []projection.Card `json:"expired"`
	Rejected  []projection.Card `json:"rejected"`
}

// Dashboard fetches the caller's bookings into a per-request store and
// returns them bucketed by effective status, rendered for the caller's
// role.
func (h *BookingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	role := h.viewerRole(r, sess)
	st := store.New(h.service)
	if err := st.Fetch(r.Context(), sess.UserID, role); err != nil {
		h.writeError(w, err)
		return
	}

	now := time.Now()
	d := st.Dashboard(now)
	resp := dashboardResponse{
		Role:      role,
		Pending:   projection.Cards(d.Pending, role, now),
		Upcoming:  projection.Cards(d.Upcoming, role, now),
		Completed: projection.Cards(d.Completed, role, now),
		Expired:   projection.Cards(d.Expired, role, now),
		Rejected:  projection.Cards(d.Rejected, role, now),
	}

	if err := pkghttp.WriteSuccess(w, resp); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) requireSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return nil, false
	}
	return sess, true
}

// viewerRole defaults to the session role; ?role= overrides it for users
// who act in both capacities.
func (h *BookingHandler) viewerRole(r *http.Request, sess *model.Session) model.Role {
	switch r.URL.Query().Get("role") {
	case string(model.RoleStudent):
		return model.RoleStudent
	case string(model.RoleTutor):
		return model.RoleTutor
	}
	if sess.Role == model.RoleTutor {
		return model.RoleTutor
	}
	return model.RoleStudent
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := pkghttp.WriteError(w, err); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
