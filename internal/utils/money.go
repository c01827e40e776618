package utils

import (
	"fmt"
	"strconv"
	"strings"

	"matwana/internal/domain"
)

// Amounts are carried as integer KES cents end to end. Parsing accepts at
// most two decimal places; anything finer is rejected rather than rounded.

// ParseAmount converts "150" or "150.50" into cents.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToUpper(s), "KES")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, domain.ValidationError{Field: "amount", Msg: "amount is required"}
	}

	neg := strings.HasPrefix(s, "-")
	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, domain.ValidationError{Field: "amount", Msg: "at most two decimal places"}
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, domain.ValidationError{Field: "amount", Msg: "invalid amount", Err: err}
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, domain.ValidationError{Field: "amount", Msg: "invalid amount", Err: err}
	}

	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}

// ValidatePositiveAmount enforces the shared credit/debit input rule.
func ValidatePositiveAmount(cents int64) error {
	if cents <= 0 {
		return domain.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	return nil
}

// FormatKES renders cents as "KES 1,500.00".
func FormatKES(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sKES %s.%02d", sign, formatThousand(cents/100), cents%100)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
