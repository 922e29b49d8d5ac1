package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/period"
)

type SettingsDTO struct {
	Timezone     string `json:"timezone,omitempty"`
	WeekFirstDay *int   `json:"weekFirstDay,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

type UserDTO struct {
	Uid         string      `json:"uid,omitempty"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName,omitempty"`
	Settings    SettingsDTO `json:"settings"`
}

func userToDTO(u User) UserDTO {
	weekFirstDay := int(u.Settings.WeekFirstDay)
	return UserDTO{
		Uid:         u.Uid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Settings: SettingsDTO{
			Timezone:     u.Settings.Timezone,
			WeekFirstDay: &weekFirstDay,
			Currency:     u.Settings.Currency,
		},
	}
}

func dtoToUser(dto UserDTO) User {
	weekFirstDay := period.DefaultWeekStart
	if dto.Settings.WeekFirstDay != nil {
		weekFirstDay = time.Weekday(*dto.Settings.WeekFirstDay)
	}
	return User{
		Uid:         dto.Uid,
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Settings: Settings{
			Timezone:     dto.Settings.Timezone,
			WeekFirstDay: weekFirstDay,
			Currency:     dto.Settings.Currency,
		},
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new user")
	w.Header().Set("Content-Type", "application/json")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Settings.WeekFirstDay != nil && (*dto.Settings.WeekFirstDay < 0 || *dto.Settings.WeekFirstDay > 6) {
		http.Error(w, "weekFirstDay must be between 0 (Sunday) and 6 (Saturday)", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	u, err := h.service.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) || errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(u)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Settings.WeekFirstDay != nil && (*dto.Settings.WeekFirstDay < 0 || *dto.Settings.WeekFirstDay > 6) {
		http.Error(w, "weekFirstDay must be between 0 (Sunday) and 6 (Saturday)", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username query parameter is required", http.StatusBadRequest)
		return
	}

	available, err := h.service.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"available": available}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
