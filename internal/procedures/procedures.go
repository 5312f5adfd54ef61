package procedures

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	auth "Glidepath/internal/auth"
	cdfa "Glidepath/internal/calc/cdfa"
	repo "Glidepath/internal/repo"
)

// Handler serves the per-user procedure library: named descent-parameter
// snapshots that designers save and reload into the tools. The snapshots
// are stored as the same JSON the tools accept.
type Handler struct {
	Repo repo.Repository
}

type saveRequest struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params"`
}

type saveResponse struct {
	ID int `json:"id"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Params) == 0 {
		http.Error(w, "Name and params required", http.StatusBadRequest)
		return
	}

	// Saved snapshots must at least decode as tool input.
	var params cdfa.Input
	if err := json.Unmarshal(req.Params, &params); err != nil {
		http.Error(w, "Params are not a valid parameter snapshot", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.SaveProcedure(r.Context(), userID, req.Name, req.Params)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saveResponse{ID: id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	procs, err := h.Repo.ListProcedures(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if procs == nil {
		procs = []repo.Procedure{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(procs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	proc, err := h.Repo.GetProcedure(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "Procedure not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(proc)
}
