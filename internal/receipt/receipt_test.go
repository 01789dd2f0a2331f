package receipt

import (
	"bytes"
	"context"
	"testing"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/domain/models"
)

func TestGenerateReceipt(t *testing.T) {
	svc := Service{
		Loader: func(ctx context.Context, paymentID string) (models.Payment, error) {
			if paymentID != "pay-1" {
				t.Fatalf("loader asked for %q", paymentID)
			}
			return models.Payment{
				ID:        "pay-1",
				UserEmail: "student@hostel.test",
				Badge:     domain.BadgeGold,
				Amount:    999,
				TxnID:     "txn_abc123",
				PaidAt:    "2026-08-01 09:30",
			}, nil
		},
	}

	data, filename, err := svc.Generate(context.Background(), "pay-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if filename != "receipt-pay-1.pdf" {
		t.Fatalf("filename = %q", filename)
	}
	if len(data) == 0 {
		t.Fatalf("empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", data[:8])
	}
}

func TestGenerateMissingPayment(t *testing.T) {
	svc := Service{
		Loader: func(ctx context.Context, paymentID string) (models.Payment, error) {
			return models.Payment{}, domain.NotFoundError{Resource: "/payments/" + paymentID}
		},
	}
	_, _, err := svc.Generate(context.Background(), "nope")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGenerateToleratesSparsePayment(t *testing.T) {
	svc := Service{
		Loader: func(ctx context.Context, paymentID string) (models.Payment, error) {
			return models.Payment{ID: paymentID}, nil
		},
	}
	data, _, err := svc.Generate(context.Background(), "pay-2")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty PDF output")
	}
}
