package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	qstashx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/qstash"
)

type publisher interface {
	Publish(ctx context.Context, destination string, payload any, dedupID string) (qstashx.PublishResult, error)
}

// QStashNotifier forwards order events to a QStash destination.
type QStashNotifier struct {
	client      publisher
	destination string
}

var _ contractx.OrderNotifier = (*QStashNotifier)(nil)

func NewQStashNotifier(client *qstashx.Client, destination string) (*QStashNotifier, error) {
	if client == nil {
		return nil, errors.New("qstash client is required")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, errors.New("qstash destination is required")
	}
	return &QStashNotifier{client: client, destination: destination}, nil
}

func (n *QStashNotifier) NotifyOrderCreated(ctx context.Context, evt contractx.OrderCreated) error {
	res, err := n.client.Publish(ctx, n.destination, evt, fmt.Sprintf("order-%d", evt.Order.ID))
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	log.Debug().
		Int64("order_id", evt.Order.ID).
		Str("message_id", res.MessageID).
		Msg("order event published")
	return nil
}
