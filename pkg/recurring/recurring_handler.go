package recurring

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/money"
	"github.com/aksuite/aksuite/pkg/transaction"
)

const dateLayout = "2006-01-02"

type RuleDTO struct {
	Uid         string  `json:"id,omitempty"`
	Kind        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Emoji       string  `json:"emoji,omitempty"`
	Frequency   string  `json:"frequency"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	DayOfMonth  *int    `json:"dayOfMonth,omitempty"`
	NextDate    string  `json:"nextDate,omitempty"`
	IsActive    bool    `json:"isActive"`
}

func ruleToDTO(rule Rule) RuleDTO {
	dto := RuleDTO{
		Uid:         rule.Uid,
		Kind:        string(rule.Kind),
		Amount:      rule.Amount.Float64(),
		Category:    rule.Category,
		Description: rule.Description,
		Emoji:       rule.Emoji,
		Frequency:   string(rule.Frequency),
		IsActive:    rule.Active,
	}
	if !rule.NextDate.IsZero() {
		dto.NextDate = rule.NextDate.Format(dateLayout)
	}
	switch rule.Frequency {
	case FrequencyWeekly:
		dow := rule.DayOfWeek
		dto.DayOfWeek = &dow
	case FrequencyMonthly, FrequencyYearly:
		dom := rule.DayOfMonth
		dto.DayOfMonth = &dom
	}
	return dto
}

func dtoToRule(dto RuleDTO) Rule {
	rule := Rule{
		Uid:         dto.Uid,
		Kind:        transaction.Kind(dto.Kind),
		Amount:      money.FromFloat(dto.Amount),
		Category:    dto.Category,
		Description: dto.Description,
		Emoji:       dto.Emoji,
		Frequency:   Frequency(dto.Frequency),
		Active:      dto.IsActive,
	}
	if dto.DayOfWeek != nil {
		rule.DayOfWeek = *dto.DayOfWeek
	}
	if dto.DayOfMonth != nil {
		rule.DayOfMonth = *dto.DayOfMonth
	}
	return rule
}

type Handler struct {
	service   Service
	processor *Processor
}

func NewHandler(service Service, processor *Processor) *Handler {
	return &Handler{service: service, processor: processor}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new recurring rule")
	w.Header().Set("Content-Type", "application/json")

	var dto RuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToRule(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidRule) || errors.Is(err, ErrInvalidAnchor) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ruleToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	rules, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		dtos = append(dtos, ruleToDTO(rule))
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

	var dto RuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		http.Error(w, "Rule id in body does not match URL", http.StatusBadRequest)
		return
	}
	rule := dtoToRule(dto)
	rule.Uid = uid

	updated, err := h.service.Update(r.Context(), rule)
	if err != nil {
		if errors.Is(err, ErrInvalidRule) || errors.Is(err, ErrInvalidAnchor) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrRuleNotFound) {
			http.Error(w, "Recurring rule not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ruleToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	uid := vars["uid"]

	var statusDTO struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.SetActive(r.Context(), uid, statusDTO.IsActive)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Recurring rule not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(statusDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
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
		http.Error(w, "Recurring rule not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Process triggers a scheduler tick on demand, the same path the periodic
// loop takes.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	processed, err := h.processor.ProcessDue(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"processed": processed}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
