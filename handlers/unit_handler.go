package handlers

import (
	"net/http"

	"github.com/rgomide/gerenciador-torneio-sub001/services"
)

type UnitHandler struct {
	unitService services.UnitService
}

func NewUnitHandler(us services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: us}
}

func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	institutionID, err := getIDFromURL(r, "institutionID")
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

	unit, err := h.unitService.Create(r.Context(), institutionID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UnitHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	unit, err := h.unitService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UnitHandler) ListByInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := getIDFromURL(r, "institutionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	units, err := h.unitService.ListByInstitution(r.Context(), institutionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"units": units}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "unitID")
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

	unit, err := h.unitService.Update(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.unitService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
