package services

import (
	"bytes"
	"fmt"
	"time"

	"matwana/internal/domain/models"
	"matwana/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders PDF e-tickets for bookings and receipts for
// payments.
type DocsService struct {
	Booking BookingService
	Wallet  WalletService
}

func (s DocsService) GenerateTicket(bookingID, passengerID int64) ([]byte, string, error) {
	b, err := s.Booking.GetOwned(bookingID, passengerID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.Booking.RequestID, "docs", "generate_ticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildTicketPDF(b)
}

func (s DocsService) GenerateReceipt(txnID string, passengerID int64) ([]byte, string, error) {
	p, err := s.Wallet.Receipt(txnID, passengerID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.Wallet.RequestID, "docs", "generate_receipt", fmt.Sprintf("transaction_id=%s", txnID))
	return buildReceiptPDF(p)
}

func buildTicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MATWANA E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No    : #%d", b.ID),
		fmt.Sprintf("Route         : %s", utils.Safe(b.RouteName, "-")),
		fmt.Sprintf("Boarding      : %s", utils.Safe(b.BoardingStop, "-")),
		fmt.Sprintf("Alighting     : %s", utils.Safe(b.AlightingStop, "-")),
		fmt.Sprintf("Departure     : %s", b.ScheduledDeparture.Format("2006-01-02 15:04")),
		fmt.Sprintf("Matatu        : %s", utils.Safe(b.PlateNumber, "Not assigned")),
		fmt.Sprintf("Fare Paid     : %s", utils.FormatKES(b.FarePaid)),
		fmt.Sprintf("Paid Via      : %s", utils.Safe(b.PaymentMethod, "-")),
		fmt.Sprintf("Booked At     : %s", b.TransactionTime.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket covers one passenger for one trip. Show it when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%d_%s.pdf", b.ID, utils.SafeFilenamePart(b.RouteName))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(p models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	completed := "-"
	if p.CompletedAt != nil {
		completed = p.CompletedAt.Format("2006-01-02 15:04")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Transaction  : %s", p.TransactionID),
		fmt.Sprintf("Type         : %s", p.PaymentType),
		fmt.Sprintf("Amount       : %s", utils.FormatKES(p.Amount)),
		fmt.Sprintf("Method       : %s", utils.Safe(p.PaymentMethod, "-")),
		fmt.Sprintf("Status       : %s", p.Status),
		fmt.Sprintf("Description  : %s", utils.Safe(p.Description, "-")),
		fmt.Sprintf("Completed At : %s", completed),
		fmt.Sprintf("Issued       : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", utils.SafeFilenamePart(p.TransactionID))
	return buf.Bytes(), filename, nil
}
