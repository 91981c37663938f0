package checkout

import (
	"testing"
	"time"

	"github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessageLayout(t *testing.T) {
	t.Parallel()

	snap := cart.Snapshot{
		Items: []cart.Item{
			{ID: "p1", Name: "X-Burger", Price: decimal.NewFromFloat(18.5), Quantity: 2},
			{ID: "p2", Name: "Guaraná Lata", Price: decimal.NewFromFloat(6), Quantity: 1},
		},
		TotalItems: 3,
		TotalPrice: decimal.NewFromFloat(43),
	}
	now := time.Date(2024, time.March, 15, 19, 30, 0, 0, time.UTC)

	got := buildMessage("Cantina da Praça", snap, now)

	want := "🛒 *NOVO PEDIDO - Cantina da Praça*\n" +
		"━━━━━━━━━━━━━━━━━━━━\n\n" +
		"1. *X-Burger*\n" +
		"   Qtd: 2 x R$ 18.50\n" +
		"   Subtotal: R$ 37.00\n\n" +
		"2. *Guaraná Lata*\n" +
		"   Qtd: 1 x R$ 6.00\n" +
		"   Subtotal: R$ 6.00\n\n" +
		"━━━━━━━━━━━━━━━━━━━━\n" +
		"💰 *TOTAL: R$ 43.00*\n\n" +
		"📱 Pedido feito pelo cardápio digital\n" +
		"⏰ 15/03/2024 19:30\n\n" +
		"Aguardo confirmação. Obrigado! 🙏"

	assert.Equal(t, want, got)
}

func TestBuildMessageIsDeterministic(t *testing.T) {
	t.Parallel()

	snap := cart.Snapshot{
		Items:      []cart.Item{{ID: "p1", Name: "Pastel", Price: decimal.NewFromFloat(9.9), Quantity: 3}},
		TotalItems: 3,
		TotalPrice: decimal.NewFromFloat(29.7),
	}
	now := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

	first := buildMessage("Barraca do Zé", snap, now)
	second := buildMessage("Barraca do Zé", snap, now)
	assert.Equal(t, first, second)
}
