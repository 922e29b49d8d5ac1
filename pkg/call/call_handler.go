package call

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type CallDTO struct {
	Uid          string `json:"id,omitempty"`
	CallerName   string `json:"callerName"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Type         string `json:"type"`
	Priority     string `json:"priority"`
	Notes        string `json:"notes"`
	FollowUp     bool   `json:"followUp"`
	FollowUpDate string `json:"followUpDate,omitempty"`
	Status       string `json:"status,omitempty"`
	Date         string `json:"date,omitempty"`
}

func callToDTO(c Call) CallDTO {
	dto := CallDTO{
		Uid:        c.Uid,
		CallerName: c.CallerName,
		Company:    c.Company,
		Phone:      c.Phone,
		Email:      c.Email,
		Type:       string(c.Type),
		Priority:   string(c.Priority),
		Notes:      c.Notes,
		FollowUp:   c.FollowUp,
		Status:     string(c.Status),
		Date:       c.Date.Format(dateLayout),
	}
	if !c.FollowUpDate.IsZero() {
		dto.FollowUpDate = c.FollowUpDate.Format(dateLayout)
	}
	return dto
}

func dtoToCall(dto CallDTO) (Call, error) {
	c := Call{
		Uid:        dto.Uid,
		CallerName: dto.CallerName,
		Company:    dto.Company,
		Phone:      dto.Phone,
		Email:      dto.Email,
		Type:       Type(dto.Type),
		Priority:   Priority(dto.Priority),
		Notes:      dto.Notes,
		FollowUp:   dto.FollowUp,
	}
	if dto.FollowUpDate != "" {
		date, err := time.Parse(dateLayout, dto.FollowUpDate)
		if err != nil {
			return Call{}, errors.New("followUpDate must be formatted as YYYY-MM-DD")
		}
		c.FollowUpDate = date
	}
	return c, nil
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Logging new call")
	w.Header().Set("Content-Type", "application/json")

	var dto CallDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := dtoToCall(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), c)
	if err != nil {
		if errors.Is(err, ErrInvalidCall) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(callToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	calls, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CallDTO, 0, len(calls))
	for _, c := range calls {
		dtos = append(dtos, callToDTO(c))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid := vars["uid"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.UpdateStatus(r.Context(), uid, Status(body.Status))
	if err != nil {
		if errors.Is(err, ErrInvalidCall) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Call not found", http.StatusNotFound)
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
		http.Error(w, "Call not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
