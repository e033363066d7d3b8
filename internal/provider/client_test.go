package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
)

func TestSubmit_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("key") != "secret" {
			t.Errorf("missing api key in request")
		}
		if r.PostForm.Get("action") != "add" {
			t.Errorf("unexpected action: %s", r.PostForm.Get("action"))
		}
		if r.PostForm.Get("quantity") != "1000" {
			t.Errorf("unexpected quantity: %s", r.PostForm.Get("quantity"))
		}
		w.Write([]byte(`{"order": 23501}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	orderID, err := client.Submit(context.Background(), 42, "https://example.com/post/1", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != 23501 {
		t.Errorf("expected order id 23501, got %d", orderID)
	}
}

func TestSubmit_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "not enough funds"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	_, err := client.Submit(context.Background(), 42, "https://example.com/post/1", 1000)
	if !errors.Is(err, errs.ErrUpstreamFailure) {
		t.Fatalf("expected upstream failure, got %v", err)
	}
}

func TestSubmit_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	_, err := client.Submit(context.Background(), 42, "https://example.com/post/1", 1000)
	if !errors.Is(err, errs.ErrUpstreamFailure) {
		t.Fatalf("expected upstream failure, got %v", err)
	}
}

func TestSubmit_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	_, err := client.Submit(context.Background(), 42, "https://example.com/post/1", 1000)
	if !errors.Is(err, errs.ErrUpstreamFailure) {
		t.Fatalf("expected upstream failure, got %v", err)
	}
}

func TestStatus_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// провайдеры любят числа в кавычках
		w.Write([]byte(`{"status": "Partial", "start_count": "3572", "remains": "157"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	info, err := client.Status(context.Background(), 23501)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Status != "Partial" {
		t.Errorf("unexpected status: %s", info.Status)
	}
	if info.StartCount == nil || *info.StartCount != 3572 {
		t.Errorf("unexpected start count: %v", info.StartCount)
	}
	if info.Remains == nil || *info.Remains != 157 {
		t.Errorf("unexpected remains: %v", info.Remains)
	}
}

func TestServices_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"service": 1, "name": "Followers", "rate": "0.90", "min": "50", "max": "10000"},
			{"service": "7", "name": "Likes", "rate": "2.5", "min": 10, "max": 5000}
		]`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	services, err := client.Services(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	if services[0].ID != 1 || services[0].Min != 50 || services[0].Max != 10000 {
		t.Errorf("unexpected first service: %+v", services[0])
	}
	if services[1].ID != 7 || services[1].Rate != 2.5 {
		t.Errorf("unexpected second service: %+v", services[1])
	}
}

func TestBalance_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balance": "85.10", "currency": "USD"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	balance, err := client.Balance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.Balance != "85.10" || balance.Currency != "USD" {
		t.Errorf("unexpected balance: %+v", balance)
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		input  string
		status model.OrderStatus
		ok     bool
	}{
		{"Pending", model.OrderPending, true},
		{"In progress", model.OrderProcessing, true},
		{"Processing", model.OrderProcessing, true},
		{"Completed", model.OrderCompleted, true},
		{"Partial", model.OrderPartial, true},
		{"Canceled", model.OrderCanceled, true},
		{"Cancelled", model.OrderCanceled, true},
		{"Error", model.OrderFailed, true},
		{"  completed ", model.OrderCompleted, true},
		{"Refunded", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		status, ok := MapStatus(tt.input)
		if ok != tt.ok || status != tt.status {
			t.Errorf("MapStatus(%q) = (%q, %v); want (%q, %v)", tt.input, status, ok, tt.status, tt.ok)
		}
	}
}

func TestPriceFromRate(t *testing.T) {
	tests := []struct {
		rate float64
		want int64
	}{
		{0.90, 90},
		{2.5, 250},
		{0.001, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := PriceFromRate(tt.rate); got != tt.want {
			t.Errorf("PriceFromRate(%v) = %d; want %d", tt.rate, got, tt.want)
		}
	}
}
