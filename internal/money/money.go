// Package money converts between user-typed amounts and integer minor units.
package money

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/KirkDiggler/poolbot/internal/common/apperr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorPerMajor is the number of minor units in one major unit.
const MinorPerMajor = 100

var (
	numberPattern  = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})+(?:\.\d+)?|-?\d+(?:[.,]\d+)?`)
	groupedPattern = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
)

var printer = message.NewPrinter(language.English)

// Parse extracts the first number from text and scales it to minor units,
// rounding half to even. Text such as "50", "12.5", "7,25", "1,000" or "buy in 20 please" is accepted.
// A comma followed by groups of three digits is a thousands separator, otherwise it is a decimal mark.
// It fails with apperr.ErrValidation when no number is present or the scaled value is not positive.
func Parse(text string) (int64, error) {
	token := numberPattern.FindString(text)
	if token == "" {
		return 0, fmt.Errorf("%w: no number in %q", apperr.ErrValidation, strings.TrimSpace(text))
	}

	if groupedPattern.MatchString(token) {
		token = strings.ReplaceAll(token, ",", "")
	} else {
		token = strings.Replace(token, ",", ".", 1)
	}

	value, ok := new(big.Rat).SetString(token)
	if !ok {
		return 0, fmt.Errorf("%w: cannot read %q", apperr.ErrValidation, token)
	}

	minor := roundHalfEven(value.Mul(value, big.NewRat(MinorPerMajor, 1)))
	if minor.Sign() <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}
	if !minor.IsInt64() {
		return 0, fmt.Errorf("%w: amount too large", apperr.ErrValidation)
	}
	return minor.Int64(), nil
}

func roundHalfEven(r *big.Rat) *big.Int {
	num := new(big.Int).Set(r.Num())
	den := r.Denom()

	neg := num.Sign() < 0
	num.Abs(num)

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Lsh(rem, 1)
	switch twice.Cmp(den) {
	case 1:
		quo.Add(quo, big.NewInt(1))
	case 0:
		if quo.Bit(0) == 1 {
			quo.Add(quo, big.NewInt(1))
		}
	}

	if neg {
		quo.Neg(quo)
	}
	return quo
}

// Format renders minor units as a grouped decimal, e.g. 123450 -> "1,234.50".
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%s.%02d", sign, printer.Sprintf("%d", minor/MinorPerMajor), minor%MinorPerMajor)
}
