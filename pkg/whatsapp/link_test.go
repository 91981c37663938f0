package whatsapp

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"eleven digits gains prefix", "11987654321", "5511987654321"},
		{"ten digits gains prefix", "1187654321", "551187654321"},
		{"already prefixed passes through", "5511987654321", "5511987654321"},
		{"formatting stripped", "(11) 98765-4321", "5511987654321"},
		{"short number unchanged", "4321", "4321"},
		{"non-ascii digit runes dropped", "١١٩٨٧٦٥٤٣٢١ 11987654321", "5511987654321"},
		{"long number unchanged", "123456789012345", "123456789012345"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.in); got != tc.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLinkEncodesMessage(t *testing.T) {
	link := Link("5511987654321", "Pedido: 2 x R$ 10,00 & troco")

	if !strings.HasPrefix(link, "https://wa.me/5511987654321?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, " ") || strings.Contains(link, "&troco") {
		t.Fatalf("message not encoded: %s", link)
	}
}
