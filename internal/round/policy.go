package round

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Policy configures when a round locks and how it is settled
type Policy struct {
	MinParticipants    int           `validate:"min=1"`
	Countdown          time.Duration `validate:"gte=0"`
	MaxParticipants    int           `validate:"gte=0"`
	MaxPot             domain.Cents  `validate:"gte=0"`
	MaxItemsPerDeposit int           `validate:"min=1"`
	RevealLead         time.Duration `validate:"gte=0"`
	RevealDuration     time.Duration `validate:"gte=0"`
	CommissionBps      int           `validate:"gte=0,lte=10000"`
}

// DefaultPolicy returns a two-player policy with a 30 second countdown
func DefaultPolicy() Policy {
	return Policy{
		MinParticipants:    2,
		Countdown:          30 * time.Second,
		MaxParticipants:    50,
		MaxItemsPerDeposit: 20,
		RevealLead:         2 * time.Second,
		RevealDuration:     10 * time.Second,
		CommissionBps:      500,
	}
}

var policyValidator = validator.New()

// Validate checks field bounds and that the participant cap is not below the minimum
func (p Policy) Validate() error {
	if err := policyValidator.Struct(p); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
		} else {
			fields = append(fields, err.Error())
		}
		return fmt.Errorf("%s: %w: %s", ErrContextInvalidPolicy, domain.ErrInvalidInput, strings.Join(fields, ", "))
	}
	if p.MaxParticipants > 0 && p.MaxParticipants < p.MinParticipants {
		return fmt.Errorf("%s: %w: MaxParticipants below MinParticipants", ErrContextInvalidPolicy, domain.ErrInvalidInput)
	}
	return nil
}

// RevealWindow is the delay between a draw and its completion
func (p Policy) RevealWindow() time.Duration {
	return p.RevealLead + p.RevealDuration
}

// Commission returns the house share of total in basis points, rounded down
func Commission(total domain.Cents, bps int) domain.Cents {
	if total <= 0 || bps <= 0 {
		return 0
	}
	if bps >= BasisPoints {
		return total
	}
	b := domain.Cents(bps)
	return (total/BasisPoints)*b + (total%BasisPoints)*b/BasisPoints
}
