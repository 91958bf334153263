package payments

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// EMIMinimumAmount is the smallest order total that can be split into EMIs.
const EMIMinimumAmount = 5000

// DefaultEMITenure is used when an EMI payment does not name a tenure.
const DefaultEMITenure = 3

// EMIInterestRate is the flat markup applied to the total before splitting.
const EMIInterestRate = 0.15

// EMITenures lists the supported instalment plans in months.
var EMITenures = []int{3, 6, 9, 12}

var nonNumericRegex = regexp.MustCompile(`[^0-9]`)
var expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)

var (
	ErrInvalidPhone  = errors.New("phone number must contain at least 10 digits")
	ErrInvalidCard   = errors.New("invalid card details")
	ErrInvalidTenure = errors.New("emi tenure must be 3, 6, 9 or 12 months")
)

// EMITenure normalises a requested tenure, falling back to the default plan.
func EMITenure(months int) (int, error) {
	if months == 0 {
		return DefaultEMITenure, nil
	}
	for _, t := range EMITenures {
		if t == months {
			return months, nil
		}
	}
	return 0, ErrInvalidTenure
}

// EMIInstallment is the monthly amount for total split over months, rounded
// to whole currency units.
func EMIInstallment(total float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	return math.Round(total / float64(months) * (1 + EMIInterestRate))
}

// SanitizePhone strips separators and keeps the digits of a buyer phone.
func SanitizePhone(phone string) (string, error) {
	trimmed := strings.TrimSpace(phone)
	if strings.ContainsAny(trimmed, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return "", ErrInvalidPhone
	}
	sanitized := nonNumericRegex.ReplaceAllString(trimmed, "")
	if len(sanitized) < 10 {
		return "", ErrInvalidPhone
	}
	return sanitized, nil
}

type CardDetails struct {
	Number string
	Name   string
	Expiry string
	CVV    string
}

func (c CardDetails) Validate() error {
	number := nonNumericRegex.ReplaceAllString(c.Number, "")
	if len(number) < 12 || len(number) > 19 {
		return fmt.Errorf("%w: card number must have 12 to 19 digits", ErrInvalidCard)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: card holder name is required", ErrInvalidCard)
	}
	if !expiryRegex.MatchString(strings.TrimSpace(c.Expiry)) {
		return fmt.Errorf("%w: expiry must be MM/YY", ErrInvalidCard)
	}
	if cvv := strings.TrimSpace(c.CVV); len(cvv) < 3 || len(cvv) > 4 || nonNumericRegex.MatchString(cvv) {
		return fmt.Errorf("%w: cvv must be 3 or 4 digits", ErrInvalidCard)
	}
	return nil
}

// MaskCard keeps only the last four digits for logs.
func MaskCard(number string) string {
	digits := nonNumericRegex.ReplaceAllString(number, "")
	if len(digits) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
