package app

import (
	"github.com/gorilla/mux"

	"github.com/aksuite/aksuite/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transaction/{uid}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{uid}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Recurring rules
	r.HandleFunc("/api/recurring", deps.RecurringHandler.Create).Methods("POST")
	r.HandleFunc("/api/recurring", deps.RecurringHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/recurring/process", deps.RecurringHandler.Process).Methods("POST")
	r.HandleFunc("/api/recurring/{uid}", deps.RecurringHandler.Update).Methods("PUT")
	r.HandleFunc("/api/recurring/{uid}/status", deps.RecurringHandler.SetStatus).Methods("PATCH")
	r.HandleFunc("/api/recurring/{uid}", deps.RecurringHandler.Delete).Methods("DELETE")

	// Budget limits
	r.HandleFunc("/api/limit", deps.LimitHandler.Create).Methods("POST")
	r.HandleFunc("/api/limit", deps.LimitHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/limit/status", deps.LimitHandler.GetStatuses).Methods("GET")
	r.HandleFunc("/api/limit/{uid}", deps.LimitHandler.Update).Methods("PUT")
	r.HandleFunc("/api/limit/{uid}/status", deps.LimitHandler.GetStatus).Methods("GET")
	r.HandleFunc("/api/limit/{uid}/status", deps.LimitHandler.SetStatus).Methods("PATCH")
	r.HandleFunc("/api/limit/{uid}", deps.LimitHandler.Delete).Methods("DELETE")

	// Password vault
	r.HandleFunc("/api/vault", deps.VaultHandler.Create).Methods("POST")
	r.HandleFunc("/api/vault", deps.VaultHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/vault/{uid}/reveal", deps.VaultHandler.Reveal).Methods("GET")
	r.HandleFunc("/api/vault/{uid}", deps.VaultHandler.Update).Methods("PUT")
	r.HandleFunc("/api/vault/{uid}", deps.VaultHandler.Delete).Methods("DELETE")

	// Call log
	r.HandleFunc("/api/call", deps.CallHandler.Create).Methods("POST")
	r.HandleFunc("/api/call", deps.CallHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/call/{uid}/status", deps.CallHandler.SetStatus).Methods("PATCH")
	r.HandleFunc("/api/call/{uid}", deps.CallHandler.Delete).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats", deps.StatsHandler.GetSummary).Queries("from", "{from}", "to", "{to}").Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
}
