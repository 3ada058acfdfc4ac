package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"tutorhub/internal/tutors/service"
	apperrors "tutorhub/pkg/errors"
	pkghttp "tutorhub/pkg/http"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/middleware"
	"tutorhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// maxProofSize caps each uploaded verification document.
const maxProofSize = 5 << 20

type TutorHandler struct {
	service service.TutorService
	log     *logger.Logger
}

func NewTutorHandler(svc service.TutorService, log *logger.Logger) *TutorHandler {
	return &TutorHandler{
		service: svc,
		log:     log,
	}
}

func (h *TutorHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/tutors", h.Register)
	router.HandlerFunc(http.MethodGet, "/tutors", h.Search)
	router.GET("/tutors/:id", h.GetByID)
	router.GET("/tutors/:id/documents/:fileID", h.Document)
}

// Register accepts a multipart form: profile fields plus optional
// identity_proof and qualification_proof files.
func (h *TutorHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(2 * maxProofSize); err != nil {
		h.writeError(w, apperrors.InvalidInput("Expected a multipart form"))
		return
	}

	fees, _ := strconv.Atoi(r.FormValue("fees"))
	input := &service.RegisterInput{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		Phone:         r.FormValue("phone"),
		Subject:       r.FormValue("subject"),
		Location:      r.FormValue("location"),
		Languages:     r.FormValue("languages"),
		Standard:      r.FormValue("standard"),
		Fees:          fees,
		Bio:           r.FormValue("bio"),
		Experience:    r.FormValue("experience"),
		Gender:        r.FormValue("gender"),
		Qualification: r.FormValue("qualification"),
	}

	var err error
	input.IdentityProofName, input.IdentityProof, err = h.formFile(r, "identity_proof")
	if err != nil {
		h.writeError(w, err)
		return
	}
	input.QualificationProofName, input.QualificationProof, err = h.formFile(r, "qualification_proof")
	if err != nil {
		h.writeError(w, err)
		return
	}

	tutor, err := h.service.Register(r.Context(), sess, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteCreated(w, tutor); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

// Search lists tutor profiles matching the query parameters, paginated.
func (h *TutorHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pkghttp.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	q := r.URL.Query()
	filter := model.TutorFilter{
		Subject:  q.Get("subject"),
		Location: q.Get("location"),
		Language: q.Get("language"),
		Standard: q.Get("standard"),
		Gender:   q.Get("gender"),
	}
	filter.MinFees, _ = strconv.Atoi(q.Get("min_fees"))
	filter.MaxFees, _ = strconv.Atoi(q.Get("max_fees"))
	if v := q.Get("verified"); v != "" {
		verified := v == "true"
		filter.Verified = &verified
	}

	tutors, total, err := h.service.Search(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WritePaginated(w, tutors, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *TutorHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tutor, err := h.service.FindByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, tutor); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

// Document streams a verification document back to its owner.
func (h *TutorHandler) Document(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	data, err := h.service.Proof(r.Context(), sess, ps.ByName("id"), ps.ByName("fileID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error("Failed to write document", "error", err)
	}
}

func (h *TutorHandler) formFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil, nil
		}
		return "", nil, apperrors.InvalidInput("Could not read uploaded file: " + field)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	if header.Size > maxProofSize {
		return "", nil, apperrors.Validation("Uploaded file is too large", map[string]any{
			"field":     field,
			"max_bytes": maxProofSize,
		})
	}

	data, err := io.ReadAll(io.LimitReader(file, maxProofSize+1))
	if err != nil {
		return "", nil, apperrors.Internal("Failed to read uploaded file", err)
	}
	if len(data) > maxProofSize {
		return "", nil, apperrors.Validation("Uploaded file is too large", map[string]any{
			"field":     field,
			"max_bytes": maxProofSize,
		})
	}
	return header.Filename, data, nil
}

func (h *TutorHandler) requireSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return nil, false
	}
	return sess, true
}

func (h *TutorHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := pkghttp.WriteError(w, err); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
