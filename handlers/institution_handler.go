package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rgomide/gerenciador-torneio-sub001/services"
)

type InstitutionHandler struct {
	institutionService services.InstitutionService
}

func NewInstitutionHandler(is services.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{institutionService: is}
}

func (h *InstitutionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	institution, err := h.institutionService.Create(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"institution": institution}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InstitutionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "institutionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	includeUnits := r.URL.Query().Get("include") == "units"

	institution, err := h.institutionService.GetByID(r.Context(), id, includeUnits)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"institution": institution}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InstitutionHandler) List(w http.ResponseWriter, r *http.Request) {
	institutions, err := h.institutionService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"institutions": institutions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InstitutionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "institutionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	institution, err := h.institutionService.Update(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"institution": institution}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InstitutionHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "institutionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	institution, err := h.institutionService.UploadLogo(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"institution": institution}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InstitutionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "institutionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.institutionService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
