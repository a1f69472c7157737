package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sprintertech/sprinter-minting/lifecycle"
)

type StatusFetcher interface {
	Status(intentID string) (lifecycle.Status, error)
}

type StatusHandler struct {
	statuses StatusFetcher
}

func NewStatusHandler(statuses StatusFetcher) *StatusHandler {
	return &StatusHandler{
		statuses: statuses,
	}
}

// HandleRequest returns the latest status of the intent lifecycle
func (h *StatusHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, ok := vars["id"]
	if !ok || id == "" {
		JSONError(w, fmt.Errorf("missing 'id'"), http.StatusBadRequest)
		return
	}

	status, err := h.statuses.Status(id)
	if err != nil {
		JSONError(w, err, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status)
}
