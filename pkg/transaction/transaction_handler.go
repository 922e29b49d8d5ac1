package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/aksuite/aksuite/pkg/money"
)

const dateLayout = "2006-01-02"

type TransactionDTO struct {
	Uid          string  `json:"id,omitempty"`
	Kind         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Description  string  `json:"description,omitempty"`
	Emoji        string  `json:"emoji,omitempty"`
	Date         string  `json:"date"`
	OriginRuleId int     `json:"originRuleId,omitempty"`
}

func transactionToDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		Uid:          tx.Uid,
		Kind:         string(tx.Kind),
		Amount:       tx.Amount.Float64(),
		Category:     tx.Category,
		Description:  tx.Description,
		Emoji:        tx.Emoji,
		Date:         tx.Date.Format(dateLayout),
		OriginRuleId: tx.OriginRuleId,
	}
}

func dtoToTransaction(dto TransactionDTO) (Transaction, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return Transaction{}, errors.New("date must be formatted as YYYY-MM-DD")
	}
	return Transaction{
		Uid:         dto.Uid,
		Kind:        Kind(dto.Kind),
		Amount:      money.FromFloat(dto.Amount),
		Category:    dto.Category,
		Description: dto.Description,
		Emoji:       dto.Emoji,
		Date:        date,
	}, nil
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new transaction")
	w.Header().Set("Content-Type", "application/json")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := dtoToTransaction(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), tx)
	if err != nil {
		if errors.Is(err, ErrInvalidTransaction) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")
	category := r.URL.Query().Get("category")

	var transactions []Transaction
	var err error
	if fromParam != "" && toParam != "" {
		var from, to time.Time
		if from, err = time.Parse(dateLayout, fromParam); err != nil {
			http.Error(w, "from must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if to, err = time.Parse(dateLayout, toParam); err != nil {
			http.Error(w, "to must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		transactions, err = h.service.FindByDateRange(r.Context(), from, to)
	} else {
		transactions, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, tx := range transactions {
		if category != "" && tx.Category != category {
			continue
		}
		dtos = append(dtos, transactionToDTO(tx))
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

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		http.Error(w, "Transaction id in body does not match URL", http.StatusBadRequest)
		return
	}
	tx, err := dtoToTransaction(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Uid = uid

	ok, err := h.service.Update(r.Context(), tx)
	if err != nil {
		if errors.Is(err, ErrInvalidTransaction) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(transactionToDTO(tx)); err != nil {
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
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
