package vault

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Uid      string `json:"id,omitempty"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Website  string `json:"website,omitempty"`
	Category string `json:"category,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
}

func entryToDTO(entry Entry) EntryDTO {
	return EntryDTO{
		Uid:      entry.Uid,
		Title:    entry.Title,
		Username: entry.Username,
		Password: entry.Secret,
		Website:  entry.Website,
		Category: entry.Category,
		Emoji:    entry.Emoji,
	}
}

func dtoToEntry(dto EntryDTO) Entry {
	return Entry{
		Uid:      dto.Uid,
		Title:    dto.Title,
		Username: dto.Username,
		Secret:   dto.Password,
		Website:  dto.Website,
		Category: dto.Category,
		Emoji:    dto.Emoji,
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new vault entry")
	w.Header().Set("Content-Type", "application/json")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToEntry(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// The response never echoes the secret back.
	created.Secret = ""

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(entry))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	uid := vars["uid"]

	entry, err := h.service.Reveal(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound):
			http.Error(w, "Vault entry not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidCiphertext):
			http.Error(w, "Vault entry cannot be decrypted", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	uid := vars["uid"]

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		http.Error(w, "Vault entry id in body does not match URL", http.StatusBadRequest)
		return
	}
	entry := dtoToEntry(dto)
	entry.Uid = uid

	updated, err := h.service.Update(r.Context(), entry)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEntry):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrEntryNotFound):
			http.Error(w, "Vault entry not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(updated)); err != nil {
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
		http.Error(w, "Vault entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
