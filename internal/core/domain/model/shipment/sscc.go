package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// SSCC is a Serial Shipping Container Code: the 18-digit GS1 identifier a
// box must carry before its shipment can be manifested. The last digit is a
// mod-10 check digit over the first 17.
type SSCC struct {
	code string
}

// NewSSCC validates and wraps an 18-digit SSCC string.
func NewSSCC(code string) (SSCC, error) {
	if code == "" {
		return SSCC{}, errs.NewValueIsRequiredError("sscc")
	}
	if len(code) != 18 {
		return SSCC{}, errs.NewValueIsInvalidErrorWithCause(
			"sscc", fmt.Errorf("must be 18 digits, got %d characters", len(code)))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return SSCC{}, errs.NewValueIsInvalidErrorWithCause(
				"sscc", fmt.Errorf("contains non-digit character %q", r))
		}
	}
	if computeCheckDigit(code[:17]) != int(code[17]-'0') {
		return SSCC{}, errs.NewValueIsInvalidErrorWithCause(
			"sscc", fmt.Errorf("check digit mismatch"))
	}

	return SSCC{code: code}, nil
}

// String returns the 18-digit code.
func (s SSCC) String() string {
	return s.code
}

// IsEqual compares two codes by value.
func (s SSCC) IsEqual(other SSCC) bool {
	return s.code == other.code
}

// Validate returns an error for the zero value.
func (s SSCC) Validate() error {
	if s.code == "" {
		return errs.NewValueIsRequiredError("sscc")
	}
	return nil
}

// computeCheckDigit implements the GS1 mod-10 algorithm: digits are weighted
// 3,1,3,1,… starting from the rightmost digit of the 17-digit body.
func computeCheckDigit(body string) int {
	sum := 0
	weight := 3
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return (10 - sum%10) % 10
}
