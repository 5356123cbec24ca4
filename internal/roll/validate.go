package roll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/coupdetete/backend/internal/domain"
)

// SpinInput is the spin outcome a client reports after the wheel stops.
type SpinInput struct {
	DestinationCity   string
	DepartureCity     string
	TravelTimeMinutes int
	PriceEuros        decimal.Decimal
}

// Policy validates a SpinInput. It returns an error wrapping domain.ErrValidation.
type Policy func(SpinInput) error

// RejectZeroValues treats blank cities and zero numbers as missing. A
// destination priced at 0 euros is therefore not recordable. Negative
// numbers are rejected as well.
func RejectZeroValues(in SpinInput) error {
	var missing []string
	if strings.TrimSpace(in.DestinationCity) == "" {
		missing = append(missing, "destination_city")
	}
	if strings.TrimSpace(in.DepartureCity) == "" {
		missing = append(missing, "departure_city")
	}
	if in.TravelTimeMinutes == 0 {
		missing = append(missing, "travel_time_minutes")
	}
	if in.PriceEuros.IsZero() {
		missing = append(missing, "typical_price_euros")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	if in.TravelTimeMinutes < 0 {
		return fmt.Errorf("%w: travel_time_minutes must be positive", domain.ErrValidation)
	}
	if in.PriceEuros.IsNegative() {
		return fmt.Errorf("%w: typical_price_euros must be positive", domain.ErrValidation)
	}
	return nil
}
