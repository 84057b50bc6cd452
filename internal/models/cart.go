package models

// CartItem is one line of a session cart: the requested plant id, the running
// quantity and a snapshot of the plant taken when the item was first added.
type CartItem struct {
	PlantID  string `json:"plantId"`
	Quantity int    `json:"quantity"`
	Plant    Plant  `json:"plant"`
}

// CartResponse is the derived view returned by every cart operation. It is
// recomputed on each call and never stored.
type CartResponse struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// BuildCartResponse computes the totals for a list of line items.
func BuildCartResponse(items []CartItem) CartResponse {
	resp := CartResponse{Items: items}
	if resp.Items == nil {
		resp.Items = []CartItem{}
	}
	for _, item := range items {
		resp.Total += item.Plant.Price * float64(item.Quantity)
		resp.ItemCount += item.Quantity
	}
	return resp
}
