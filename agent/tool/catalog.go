package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
)

const (
	noProductsText      = "no products available"
	nothingInRangeText  = "nothing in this price range"
	nothingFoundText    = "nothing found"
	notFoundProductJSON = "{}"
)

// BuildSalesTools returns the catalog and order tools bound to catalog.
// notifier may be nil.
func BuildSalesTools(catalog contractx.Catalog, notifier contractx.OrderNotifier) ([]einotool.BaseTool, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is required", contractx.ErrValidation)
	}
	s := &salesTools{catalog: catalog, notifier: notifier, now: time.Now}

	return []einotool.BaseTool{
		newTool(infoGetAllProducts, s.getAllProducts),
		newTool(infoGetProduct, s.getProduct),
		newTool(infoFindProductByPrice, s.findProductByPrice),
		newTool(infoFindProductByFeature, s.findProductByFeature),
		newTool(infoCreateOrder, s.createOrder),
	}, nil
}

var (
	infoGetAllProducts = &schema.ToolInfo{
		Name:        contractx.ToolGetAllProducts,
		Desc:        "Returns the names of all phones available for purchase.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}
	infoGetProduct = &schema.ToolInfo{
		Name: contractx.ToolGetProduct,
		Desc: "Returns everything known about one phone: id, name, description, price and count in stock. Returns {} when the name is unknown.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"phone_name": {Type: schema.String, Desc: "Exact model name of the phone", Required: true},
		}),
	}
	infoFindProductByPrice = &schema.ToolInfo{
		Name: contractx.ToolFindProductByPrice,
		Desc: "Returns the names of phones whose price is between min_price and max_price inclusive.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"min_price": {Type: schema.Number, Desc: "Lowest acceptable price", Required: true},
			"max_price": {Type: schema.Number, Desc: "Highest acceptable price", Required: true},
		}),
	}
	infoFindProductByFeature = &schema.ToolInfo{
		Name: contractx.ToolFindProductByFeature,
		Desc: "Searches phone descriptions for a word or phrase and returns the matching models.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"feature": {Type: schema.String, Desc: "Word or phrase to look for, e.g. OLED or 5000 mAh", Required: true},
		}),
	}
	infoCreateOrder = &schema.ToolInfo{
		Name: contractx.ToolCreateOrder,
		Desc: "Creates a purchase order. Ask the customer for name, phone number and address before calling.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"name":         {Type: schema.String, Desc: "Customer name", Required: true},
			"phone_number": {Type: schema.String, Desc: "Customer phone number", Required: true},
			"address":      {Type: schema.String, Desc: "Delivery address", Required: true},
		}),
	}
)

type salesTools struct {
	catalog  contractx.Catalog
	notifier contractx.OrderNotifier
	now      func() time.Time
}

type noArgs struct{}

type getProductArgs struct {
	PhoneName string `json:"phone_name"`
}

type priceRangeArgs struct {
	MinPrice *Number `json:"min_price"`
	MaxPrice *Number `json:"max_price"`
}

type featureArgs struct {
	Feature string `json:"feature"`
}

type createOrderArgs struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func (s *salesTools) getAllProducts(ctx context.Context, _ noArgs) (string, error) {
	names, err := s.catalog.ProductNames(ctx)
	if err != nil {
		return "", err
	}
	return joinNames(names, noProductsText), nil
}

func (s *salesTools) getProduct(ctx context.Context, args getProductArgs) (string, error) {
	name := strings.TrimSpace(args.PhoneName)
	if name == "" {
		return "", fmt.Errorf("%w: phone_name is required", contractx.ErrToolArgs)
	}

	p, err := s.catalog.ProductByName(ctx, name)
	if err != nil {
		if errors.Is(err, contractx.ErrProductNotFound) {
			return notFoundProductJSON, nil
		}
		return "", err
	}

	out, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal product: %w", err)
	}
	return string(out), nil
}

func (s *salesTools) findProductByPrice(ctx context.Context, args priceRangeArgs) (string, error) {
	if args.MinPrice == nil || args.MaxPrice == nil {
		return "", fmt.Errorf("%w: min_price and max_price are required", contractx.ErrToolArgs)
	}

	names, err := s.catalog.ProductNamesByPriceRange(ctx, float64(*args.MinPrice), float64(*args.MaxPrice))
	if err != nil {
		return "", err
	}
	return joinNames(names, nothingInRangeText), nil
}

func (s *salesTools) findProductByFeature(ctx context.Context, args featureArgs) (string, error) {
	feature := strings.TrimSpace(args.Feature)
	if feature == "" {
		return "", fmt.Errorf("%w: feature is required", contractx.ErrToolArgs)
	}

	names, err := s.catalog.ProductNamesByFeature(ctx, feature)
	if err != nil {
		return "", err
	}
	return joinNames(names, nothingFoundText), nil
}

func (s *salesTools) createOrder(ctx context.Context, args createOrderArgs) (string, error) {
	req := contractx.OrderRequest{
		Name:        strings.TrimSpace(args.Name),
		PhoneNumber: strings.TrimSpace(args.PhoneNumber),
		Address:     strings.TrimSpace(args.Address),
	}
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", contractx.ErrToolArgs, strings.Join(missing, ", "))
	}

	order, err := s.catalog.CreateOrder(ctx, req)
	if err != nil {
		return "", err
	}
	log.Info().Int64("order_id", order.ID).Msg("order created")

	if s.notifier != nil {
		evt := contractx.OrderCreated{
			Event: "order.created",
			Order: order,
			At:    s.now().UTC(),
		}
		if err := s.notifier.NotifyOrderCreated(ctx, evt); err != nil {
			log.Error().Err(err).Int64("order_id", order.ID).Msg("order notification failed")
		}
	}

	return fmt.Sprintf("order #%d created for %s, delivery to %s, contact %s",
		order.ID, order.Name, order.Address, order.PhoneNumber), nil
}

func joinNames(names []string, empty string) string {
	if len(names) == 0 {
		return empty
	}
	return strings.Join(names, ", ")
}
