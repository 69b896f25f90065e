package contract

import "time"

const (
	ToolGetAllProducts       = "get_all_products"
	ToolGetProduct           = "get_product"
	ToolFindProductByPrice   = "find_product_by_price"
	ToolFindProductByFeature = "find_product_by_feature"
	ToolCreateOrder          = "create_order"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Count       int     `json:"count"`
}

type OrderRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type PlacedOrder struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderCreated is published after an order row is committed.
type OrderCreated struct {
	Event string      `json:"event"`
	Order PlacedOrder `json:"order"`
	At    time.Time   `json:"at"`
}
