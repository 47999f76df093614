package sales

import (
	"fmt"
	"time"

	"github.com/jhoicas/stock-insights/internal/domain"
)

// parsePeriod traduce el período nominal a una fecha de corte.
// "all" devuelve el tiempo cero: sin corte.
func parsePeriod(period string) (time.Time, error) {
	now := time.Now()
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month", "":
		return now.AddDate(0, 0, -30), nil
	case "quarter":
		return now.AddDate(0, 0, -90), nil
	case "all":
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("período %q: %w", period, domain.ErrInvalidPeriod)
}
