package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kendall-kelly/field-service-api/models"
)

// InvoicePDFService renders a billing document from an invoice projection.
// Rendering is a pure function of the invoice's stored data and has no side
// effects on the invoice itself.
type InvoicePDFService interface {
	// GenerateInvoicePDF produces a PDF containing customer, line items and totals
	GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error)
}

// MarotoPDFService implements InvoicePDFService using the maroto layout engine
type MarotoPDFService struct{}

var pdfServiceInstance InvoicePDFService

// InitPDFService initializes the PDF service with the maroto renderer
func InitPDFService() InvoicePDFService {
	pdfServiceInstance = &MarotoPDFService{}
	return pdfServiceInstance
}

// GetPDFService returns the initialized PDF service instance
func GetPDFService() InvoicePDFService {
	if pdfServiceInstance == nil {
		return InitPDFService()
	}
	return pdfServiceInstance
}

// SetPDFService sets the PDF service instance (primarily for testing)
func SetPDFService(service InvoicePDFService) {
	pdfServiceInstance = service
}

// GenerateInvoicePDF lays out the invoice header, line items and totals
func (s *MarotoPDFService) GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	m := maroto.New()

	m.AddRow(14, text.NewCol(12, "INVOICE "+invoice.InvoiceNumber,
		props.Text{Style: fontstyle.Bold, Size: 16}))

	m.AddRow(6,
		text.NewCol(6, "Billed to: "+invoice.CustomerName, props.Text{Size: 10}),
		text.NewCol(6, "Invoice date: "+invoice.InvoiceDate.Format("2006-01-02"),
			props.Text{Size: 10, Align: align.Right}),
	)
	if invoice.DueDate != nil {
		m.AddRow(6, text.NewCol(12, "Due date: "+invoice.DueDate.Format("2006-01-02"),
			props.Text{Size: 10, Align: align.Right}))
	}
	m.AddRow(6, text.NewCol(12, "Status: "+invoice.Status, props.Text{Size: 10}))

	m.AddRow(8,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	for _, item := range invoice.Items {
		m.AddRow(6,
			text.NewCol(6, item.Description, props.Text{Size: 10}),
			text.NewCol(2, fmt.Sprintf("%.2f", item.Quantity), props.Text{Size: 10, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", item.UnitPrice), props.Text{Size: 10, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", item.Amount), props.Text{Size: 10, Align: align.Right}),
		)
	}

	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Subtotal: %.2f", invoice.Subtotal),
		props.Text{Size: 10, Align: align.Right}))
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("Tax: %.2f", invoice.TaxAmount),
		props.Text{Size: 10, Align: align.Right}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Total: %.2f", invoice.Total),
		props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right}))

	if invoice.Notes != "" {
		m.AddRow(8, text.NewCol(12, "Notes: "+invoice.Notes, props.Text{Size: 9}))
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return document.GetBytes(), nil
}
