package stats

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(summary Summary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats renders one row per day followed by a category breakdown and
// the range totals.
func (t *CsvStatsRendererImpl) RenderStats(summary Summary) (string, error) {
	data := make([][]string, 0, len(summary.Days)+len(summary.Categories)+5)

	data = append(data, []string{"Date", "Income", "Expenses"})
	for _, day := range summary.Days {
		data = append(data, []string{
			day.Date.Format("02/01/2006"),
			day.Income.String(),
			day.Expenses.String(),
		})
	}
	data = append(data, []string{"Total", summary.TotalIncome.String(), summary.TotalExpenses.String()})
	data = append(data, []string{"Net", summary.Net.String(), ""})

	data = append(data, []string{})
	data = append(data, []string{"Category", "Spent", ""})
	for _, category := range summary.Categories {
		data = append(data, []string{category.Category, category.Amount.String(), ""})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
