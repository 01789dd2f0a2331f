// Package receipt renders a downloadable PDF for a settled membership
// payment from the history screen.
package receipt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"hostelmeals/internal/api"
	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/utils"
)

// Service generates payment receipts. Loader is injectable for tests;
// the default resolves the payment through the API client.
type Service struct {
	Payments  *api.PaymentsService
	RequestID string
	Loader    func(ctx context.Context, paymentID string) (models.Payment, error)
}

// Generate returns the PDF bytes and a suggested filename.
func (s Service) Generate(ctx context.Context, paymentID string) ([]byte, string, error) {
	p, err := s.load(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", "payment_id="+paymentID)
	data, err := buildReceiptPDF(p)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("receipt-%s.pdf", p.ID), nil
}

func (s Service) load(ctx context.Context, paymentID string) (models.Payment, error) {
	if s.Loader != nil {
		return s.Loader(ctx, paymentID)
	}
	return s.Payments.Get(ctx, paymentID)
}

func buildReceiptPDF(p models.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Receipt No : " + safe(p.ID, "-"),
		"Date       : " + safe(p.PaidAt, time.Now().Format("2006-01-02 15:04")),
		"Email      : " + safe(p.UserEmail, "-"),
		"Membership : " + strings.ToUpper(string(p.Badge)),
		"Txn ID     : " + safe(p.TxnID, "-"),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Amount paid: "+utils.FormatTaka(p.Amount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt confirms your hostel meal membership purchase. Keep it for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
