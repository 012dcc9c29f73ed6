package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/models"
)

func sampleNotifyOrder() *models.Order {
	return &models.Order{
		ID:              7,
		OrderNo:         "KL123",
		CustomerName:    "Jordan <Lee>",
		CustomerEmail:   "jordan@example.com",
		ShippingAddress: "12 Court St",
		Subtotal:        models.MustMoney("259.98"),
		DiscountAmount:  models.MustMoney("26.00"),
		TotalAmount:     models.MustMoney("233.98"),
		PromoCode:       "WELCOME10",
		Items: []models.OrderItem{
			{ProductName: "Air Max 90", Quantity: 2, Size: "10", Color: "White", Price: models.MustMoney("129.99")},
		},
	}
}

func TestRenderOrderNotification(t *testing.T) {
	html, err := renderOrderNotification(sampleNotifyOrder())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{
		"New Order Received",
		"2 x Air Max 90",
		"Size: 10, Color: White, Price: $129.99",
		"WELCOME10",
		"$233.98",
		"Jordan &lt;Lee&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered html missing %q:\n%s", want, html)
		}
	}
}

func TestSendOrderNotificationDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendOrderNotification(context.Background(), sampleNotifyOrder()); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestSendOrderNotificationViaBrevo(t *testing.T) {
	var captured brevoRequest
	var apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body failed: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@smtp-relay>"}`))
	}))
	defer server.Close()

	svc := NewEmailService(&config.EmailConfig{
		Enabled:      true,
		Provider:     "brevo",
		From:         "orders@kickslife.shop",
		AdminAddress: "owner@kickslife.shop",
		Brevo:        config.BrevoConfig{APIKey: "xkeysib-test", Endpoint: server.URL},
	})
	if err := svc.SendOrderNotification(context.Background(), sampleNotifyOrder()); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if apiKey != "xkeysib-test" {
		t.Fatalf("unexpected api key header: %q", apiKey)
	}
	if captured.Subject != "New Order Received" || captured.Sender.Name != "Kicks Life" || captured.Sender.Email != "orders@kickslife.shop" {
		t.Fatalf("unexpected request: %+v", captured)
	}
	if len(captured.To) != 1 || captured.To[0].Email != "owner@kickslife.shop" || captured.To[0].Name != "Admin" {
		t.Fatalf("unexpected recipients: %+v", captured.To)
	}
}

func TestSendOrderNotificationBrevoFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewEmailService(&config.EmailConfig{
		Enabled: true,
		From:    "orders@kickslife.shop",
		Brevo:   config.BrevoConfig{APIKey: "bad", Endpoint: server.URL},
	})
	if err := svc.SendOrderNotification(context.Background(), sampleNotifyOrder()); !errors.Is(err, ErrEmailProviderFailed) {
		t.Fatalf("expected ErrEmailProviderFailed, got %v", err)
	}
}

func TestSendOrderNotificationNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true, From: "orders@kickslife.shop"})
	if err := svc.SendOrderNotification(context.Background(), sampleNotifyOrder()); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
	smtpSvc := NewEmailService(&config.EmailConfig{Enabled: true, Provider: "smtp", From: "orders@kickslife.shop"})
	if err := smtpSvc.SendOrderNotification(context.Background(), sampleNotifyOrder()); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured for smtp, got %v", err)
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	raw := buildEmailMessage(buildFromAddress("orders@kickslife.shop", "Kicks Life"), "jordan@example.com", "New Order Received", "<p>hi</p>")
	if !strings.Contains(raw, "Content-Type: text/html; charset=UTF-8\r\n") {
		t.Fatalf("missing html content type: %q", raw)
	}
	if !strings.Contains(raw, "To: jordan@example.com\r\n") || !strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>") {
		t.Fatalf("unexpected message: %q", raw)
	}
}
