package tool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	qstashx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/qstash"
)

func TestQStashNotifierPublishesOrderEvent(t *testing.T) {
	t.Parallel()

	var (
		gotPath  string
		gotDedup string
		gotEvent contractx.OrderCreated
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotPath = r.URL.Path
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		if err := json.NewDecoder(r.Body).Decode(&gotEvent); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messageId":"msg_1"}`))
	}))
	t.Cleanup(server.Close)

	client, err := qstashx.NewClient(qstashx.Config{URL: server.URL, Token: "token"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	notifier, err := NewQStashNotifier(client, "orders-topic")
	if err != nil {
		t.Fatalf("NewQStashNotifier() error = %v", err)
	}

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	err = notifier.NotifyOrderCreated(context.Background(), contractx.OrderCreated{
		Event: "order.created",
		Order: contractx.PlacedOrder{ID: 42, Name: "Somchai", PhoneNumber: "0812345678", Address: "Bangkok"},
		At:    at,
	})
	if err != nil {
		t.Fatalf("NotifyOrderCreated() error = %v", err)
	}

	if gotPath != "/v2/publish/orders-topic" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotDedup != "order-42" {
		t.Fatalf("unexpected dedup id: %s", gotDedup)
	}
	if gotEvent.Order.ID != 42 || gotEvent.Order.PhoneNumber != "0812345678" || !gotEvent.At.Equal(at) {
		t.Fatalf("unexpected event: %+v", gotEvent)
	}
}

func TestQStashNotifierWrapsPublishError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	t.Cleanup(server.Close)

	notifier, err := NewQStashNotifier(qstashx.MustNew(qstashx.Config{URL: server.URL, Token: "bad"}), "orders")
	if err != nil {
		t.Fatalf("NewQStashNotifier() error = %v", err)
	}
	if err := notifier.NotifyOrderCreated(context.Background(), contractx.OrderCreated{}); err == nil {
		t.Fatal("expected publish error")
	}
}

func TestNewQStashNotifierValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewQStashNotifier(nil, "orders"); err == nil {
		t.Fatal("expected error for nil client")
	}
	client := qstashx.MustNew(qstashx.Config{URL: "https://qstash.upstash.io", Token: "t"})
	if _, err := NewQStashNotifier(client, "  "); err == nil {
		t.Fatal("expected error for empty destination")
	}
}
