package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// NormalizePhone strips non-digit characters and applies the Brazilian
// country-prefix heuristic: a 10 or 11 digit number that does not already
// start with 55 gets 55 prepended. Anything else passes through unchanged.
// This is best-effort formatting, not numbering-plan validation.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		// ASCII digits only; other scripts' digit runes are not valid in a
		// wa.me path.
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if (len(number) == 10 || len(number) == 11) && !strings.HasPrefix(number, "55") {
		number = "55" + number
	}
	return number
}

// Link builds a wa.me click-to-chat URL for the given normalized number and
// message body.
func Link(phone, text string) string {
	values := url.Values{}
	values.Set("text", text)
	return fmt.Sprintf("%s%s?%s", baseURL, phone, values.Encode())
}
