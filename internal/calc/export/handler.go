package export

import (
	"encoding/json"
	"net/http"

	cdfa "Glidepath/internal/calc/cdfa"
)

type Handler struct{}

func (h *Handler) Csv(w http.ResponseWriter, r *http.Request) {
	res, ok := compute(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"cdfa.csv\"")
	if err := WriteCsv(w, res); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Xlsx(w http.ResponseWriter, r *http.Request) {
	res, ok := compute(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"cdfa.xlsx\"")
	if err := WriteXlsx(w, res); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}

func compute(w http.ResponseWriter, r *http.Request) (cdfa.Result, bool) {
	var input cdfa.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return cdfa.Result{}, false
	}
	res, err := cdfa.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return cdfa.Result{}, false
	}
	return res, true
}
