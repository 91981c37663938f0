package cart

import "github.com/google/uuid"

type addItemRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	ComboID   *uuid.UUID `json:"combo_id"`
	Quantity  int        `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
