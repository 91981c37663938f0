package cart

import (
	cartsvc "github.com/cadefab1n/cardapio-backend/internal/cart"
	"github.com/shopspring/decimal"
)

type itemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    *string         `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
}

type cartResponse struct {
	Items      []itemResponse  `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func newCartResponse(snap cartsvc.Snapshot) cartResponse {
	items := make([]itemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, itemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Quantity: item.Quantity,
		})
	}
	return cartResponse{
		Items:      items,
		TotalItems: snap.TotalItems,
		TotalPrice: snap.TotalPrice,
	}
}
