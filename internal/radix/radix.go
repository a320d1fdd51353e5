// Package radix converts numerals between binary, octal, decimal and
// hexadecimal.
package radix

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidInput is returned when the numeral is not valid in the source base.
var ErrInvalidInput = errors.New("invalid input")

// Base is a supported numeral base.
type Base int

const (
	Binary      Base = 2
	Octal       Base = 8
	Decimal     Base = 10
	Hexadecimal Base = 16
)

var baseNames = map[string]Base{
	"binary":      Binary,
	"octal":       Octal,
	"decimal":     Decimal,
	"hexadecimal": Hexadecimal,
}

// ParseBase resolves a base by name ("binary", "octal", "decimal", "hexadecimal").
func ParseBase(name string) (Base, error) {
	b, ok := baseNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown base %q", name)
	}
	return b, nil
}

// Convert re-renders numeral from one base into another. The whole numeral must
// be valid in the source base; digits above 9 are returned upper-case.
func Convert(numeral string, from, to Base) (string, error) {
	s := strings.TrimSpace(numeral)
	if s == "" {
		return "", ErrInvalidInput
	}

	n, ok := new(big.Int).SetString(s, int(from))
	if !ok {
		return "", fmt.Errorf("%w: %q is not a base-%d number", ErrInvalidInput, s, from)
	}
	return strings.ToUpper(n.Text(int(to))), nil
}
