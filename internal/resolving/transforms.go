package resolving

import (
	"fmt"
	"strings"
	"unicode"
)

// FormatPhone normalizes a stored phone number into the (XXX) XXX-XXXX
// form most US application forms expect. Numbers that are not 10 digits
// (or 11 with a leading country code 1) pass through unchanged.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return phone
	}

	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}
