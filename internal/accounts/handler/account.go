package handler

import (
	"encoding/json"
	"net/http"

	"tutorhub/internal/accounts/service"
	apperrors "tutorhub/pkg/errors"
	pkghttp "tutorhub/pkg/http"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/middleware"
	"tutorhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AccountHandler struct {
	service service.AccountService
	log     *logger.Logger
}

func NewAccountHandler(svc service.AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: svc,
		log:     log,
	}
}

func (h *AccountHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/accounts/signup", h.Signup)
	router.HandlerFunc(http.MethodPost, "/accounts/login", h.Login)
	router.HandlerFunc(http.MethodGet, "/accounts/me", h.Me)
	router.HandlerFunc(http.MethodPost, "/accounts/role", h.ChooseRole)
	router.HandlerFunc(http.MethodPost, "/accounts/logout", h.Logout)
}

type roleRequest struct {
	Role model.Role `json:"role"`
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	result, err := h.service.Signup(r.Context(), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteCreated(w, result); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	result, err := h.service.Login(r.Context(), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, result); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(r.Context(), sess)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, user); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *AccountHandler) ChooseRole(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	result, err := h.service.ChooseRole(r.Context(), sess, req.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, result); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

// Logout is a formality with stateless tokens: the server has nothing to
// destroy, the client discards its token. The endpoint exists so clients
// have a uniform call to make.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	pkghttp.WriteNoContent(w)
}

func (h *AccountHandler) requireSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return nil, false
	}
	return sess, true
}

func (h *AccountHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := pkghttp.WriteError(w, err); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
