package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/shopspring/decimal"
)

const messageDivider = "━━━━━━━━━━━━━━━━━━━━"

// buildMessage renders the order summary sent over WhatsApp. The layout is
// stable so the restaurant staff can parse orders at a glance.
func buildMessage(restaurantName string, snap cart.Snapshot, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 *NOVO PEDIDO - %s*\n", restaurantName)
	b.WriteString(messageDivider + "\n\n")

	for i, item := range snap.Items {
		subtotal := item.Price.Mul(quantityDecimal(item.Quantity))
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Qtd: %d x R$ %s\n", item.Quantity, item.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: R$ %s\n\n", subtotal.StringFixed(2))
	}

	b.WriteString(messageDivider + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: R$ %s*\n\n", snap.TotalPrice.StringFixed(2))
	b.WriteString("📱 Pedido feito pelo cardápio digital\n")
	fmt.Fprintf(&b, "⏰ %s\n\n", now.Format("02/01/2006 15:04"))
	b.WriteString("Aguardo confirmação. Obrigado! 🙏")

	return b.String()
}

func quantityDecimal(q int) decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}
