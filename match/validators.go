package match

import "strings"

// Validator is a binary accept/reject gate applied to raw regex matches.
// Implementations must treat any input they cannot parse as a rejection.
type Validator interface {
	Validate(matched string) bool
}

// ssnValidator applies the SSA structural rules: the area number may not be
// 000, 666, or 900–999; the group number may not be 00; the serial number
// may not be 0000.
type ssnValidator struct{}

func (ssnValidator) Validate(matched string) bool {
	digits := digitsOf(matched)
	if len(digits) != 9 {
		return false
	}
	area := digits[:3]
	group := digits[3:5]
	serial := digits[5:]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	if group == "00" {
		return false
	}
	if serial == "0000" {
		return false
	}
	return true
}

// luhnValidator accepts card numbers of 13–19 digits that pass the Luhn
// checksum after separator stripping.
type luhnValidator struct{}

func (luhnValidator) Validate(matched string) bool {
	digits := digitsOf(matched)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// phoneValidator accepts US numbers with 10 digits, or 11 with a leading
// country code 1.
type phoneValidator struct{}

func (phoneValidator) Validate(matched string) bool {
	digits := digitsOf(matched)
	switch len(digits) {
	case 10:
		return true
	case 11:
		return digits[0] == '1'
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func digitsOf(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
