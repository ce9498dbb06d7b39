package services

import (
	"fmt"
	"sync"

	"github.com/kendall-kelly/field-service-api/models"
)

// MockPDFService is a mock implementation of InvoicePDFService for testing
type MockPDFService struct {
	rendered map[uint][]byte // map of invoice ID to rendered content
	failWith error           // when set, GenerateInvoicePDF returns this error
	mu       sync.RWMutex
}

// NewMockPDFService creates a new mock PDF service
func NewMockPDFService() *MockPDFService {
	return &MockPDFService{
		rendered: make(map[uint][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global PDF service instance for testing
func (m *MockPDFService) SetAsMockForTesting() {
	SetPDFService(m)
}

// FailWith makes subsequent render calls return the given error
func (m *MockPDFService) FailWith(err error) {
	m.mu.Lock()
	m.failWith = err
	m.mu.Unlock()
}

// GenerateInvoicePDF simulates rendering an invoice document
func (m *MockPDFService) GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	content := []byte(fmt.Sprintf("%%PDF-mock %s total=%.2f", invoice.InvoiceNumber, invoice.Total))
	m.rendered[invoice.ID] = content
	return content, nil
}

// RenderedInvoices returns the IDs of invoices rendered so far (for assertions)
func (m *MockPDFService) RenderedInvoices() []uint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uint, 0, len(m.rendered))
	for id := range m.rendered {
		ids = append(ids, id)
	}
	return ids
}

// Clear resets the mock's recorded renders and failure mode
func (m *MockPDFService) Clear() {
	m.mu.Lock()
	m.rendered = make(map[uint][]byte)
	m.failWith = nil
	m.mu.Unlock()
}
