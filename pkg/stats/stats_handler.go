package stats

import (
	"encoding/json"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

type DailyStatsDTO struct {
	Date     string  `json:"date"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type CategorySpendingDTO struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"`
}

type SummaryDTO struct {
	StartDate     string                `json:"startDate"`
	EndDate       string                `json:"endDate"`
	Days          []DailyStatsDTO       `json:"days"`
	Categories    []CategorySpendingDTO `json:"categories"`
	TotalIncome   float64               `json:"totalIncome"`
	TotalExpenses float64               `json:"totalExpenses"`
	Net           float64               `json:"net"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

func (handler *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "from must be formatted as YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "to must be formatted as YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	summary, err := handler.statsService.GetSummary(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderStats(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func summaryToDTO(summary Summary) SummaryDTO {
	days := make([]DailyStatsDTO, 0, len(summary.Days))
	for _, day := range summary.Days {
		days = append(days, DailyStatsDTO{
			Date:     day.Date.Format(dateLayout),
			Income:   day.Income.Float64(),
			Expenses: day.Expenses.Float64(),
		})
	}

	categories := make([]CategorySpendingDTO, 0, len(summary.Categories))
	for _, category := range summary.Categories {
		categories = append(categories, CategorySpendingDTO{
			Category: category.Category,
			Amount:   category.Amount.Float64(),
			Share:    category.Share,
		})
	}

	return SummaryDTO{
		StartDate:     summary.StartDate.Format(dateLayout),
		EndDate:       summary.EndDate.Format(dateLayout),
		Days:          days,
		Categories:    categories,
		TotalIncome:   summary.TotalIncome.Float64(),
		TotalExpenses: summary.TotalExpenses.Float64(),
		Net:           summary.Net.Float64(),
	}
}
