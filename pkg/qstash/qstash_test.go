package qstash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublish(t *testing.T) {
	t.Parallel()

	var (
		gotPath    string
		gotAuth    string
		gotDedup   string
		gotPayload map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, `{"messageId":"msg_1"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	out, err := client.Publish(context.Background(), "orders-topic", map[string]any{"order_id": 7}, "order-7")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if out.MessageID != "msg_1" {
		t.Fatalf("MessageID = %q, want msg_1", out.MessageID)
	}
	if gotPath != "/v2/publish/orders-topic" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotDedup != "order-7" {
		t.Fatalf("dedup id = %q", gotDedup)
	}
	if gotPayload["order_id"] != float64(7) {
		t.Fatalf("payload = %#v", gotPayload)
	}
}

func TestPublishErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid token"}`)
	}))
	t.Cleanup(server.Close)

	client := MustNew(Config{URL: server.URL, Token: "bad"})
	_, err := client.Publish(context.Background(), "orders-topic", struct{}{}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{URL: "", Token: "t"}); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewClient(Config{URL: "https://qstash.upstash.io", Token: " "}); err == nil {
		t.Fatal("expected error for empty token")
	}
	if (Config{Token: "t"}).Enabled() {
		t.Fatal("config without destination must not be enabled")
	}
}
