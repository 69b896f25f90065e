package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Catalog is the storage surface the tools run against.
type Catalog interface {
	ProductNames(ctx context.Context) ([]string, error)
	ProductByName(ctx context.Context, name string) (Product, error)
	ProductNamesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]string, error)
	ProductNamesByFeature(ctx context.Context, feature string) ([]string, error)
	CreateOrder(ctx context.Context, req OrderRequest) (PlacedOrder, error)
}

type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, evt OrderCreated) error
}

// Responder produces the assistant's next message for a conversation history.
type Responder interface {
	Respond(ctx context.Context, history []*schema.Message) (*schema.Message, error)
}
