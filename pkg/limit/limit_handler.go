package limit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/period"
)

type LimitDTO struct {
	Uid            string  `json:"id,omitempty"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Period         string  `json:"period"`
	AlertThreshold int     `json:"alertThreshold"`
	Active         bool    `json:"isActive"`
}

type LimitStatusDTO struct {
	LimitDTO
	CurrentSpending float64 `json:"currentSpending"`
	PercentageUsed  float64 `json:"percentageUsed"`
	Remaining       float64 `json:"remainingAmount"`
	Status          string  `json:"status"`
}

func limitToDTO(limit BudgetLimit) LimitDTO {
	return LimitDTO{
		Uid:            limit.Uid,
		Category:       limit.Category,
		Amount:         limit.CapAmount.Float64(),
		Period:         string(limit.Period),
		AlertThreshold: limit.AlertThresholdPercent,
		Active:         limit.Active,
	}
}

func statusToDTO(status LimitStatus) LimitStatusDTO {
	return LimitStatusDTO{
		LimitDTO:        limitToDTO(status.BudgetLimit),
		CurrentSpending: status.CurrentSpending.Float64(),
		PercentageUsed:  status.PercentageUsed,
		Remaining:       status.Remaining.Float64(),
		Status:          string(status.Status),
	}
}

func dtoToLimit(dto LimitDTO) BudgetLimit {
	return BudgetLimit{
		Uid:                   dto.Uid,
		Category:              dto.Category,
		CapAmount:             money.FromFloat(dto.Amount),
		Period:                period.Period(dto.Period),
		AlertThresholdPercent: dto.AlertThreshold,
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget limit")
	w.Header().Set("Content-Type", "application/json")

	var dto LimitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToLimit(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidLimit) || errors.Is(err, ErrDuplicateCategory) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(limitToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limits, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]LimitDTO, 0, len(limits))
	for _, l := range limits {
		dtos = append(dtos, limitToDTO(l))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	uid := vars["uid"]

	var dto LimitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		http.Error(w, "Budget limit id in body does not match URL", http.StatusBadRequest)
		return
	}
	limit := dtoToLimit(dto)
	limit.Uid = uid

	updated, err := h.service.Update(r.Context(), limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidLimit), errors.Is(err, ErrDuplicateCategory):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrLimitNotFound):
			http.Error(w, "Budget limit not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(limitToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid := vars["uid"]

	var body struct {
		Active bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.SetActive(r.Context(), uid, body.Active)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget limit not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid := vars["uid"]

	ok, err := h.service.Delete(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget limit not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	statuses, err := h.service.GetStatuses(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]LimitStatusDTO, 0, len(statuses))
	for _, status := range statuses {
		dtos = append(dtos, statusToDTO(status))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	uid := vars["uid"]

	status, err := h.service.GetStatusByUid(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrLimitNotFound) {
			http.Error(w, "Budget limit not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(statusToDTO(status)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
