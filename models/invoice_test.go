package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "customers", Customer{}.TableName())
	assert.Equal(t, "technicians", Technician{}.TableName())
	assert.Equal(t, "jobs", Job{}.TableName())
	assert.Equal(t, "invoices", Invoice{}.TableName())
	assert.Equal(t, "invoice_items", InvoiceItem{}.TableName())
}

func TestInvoiceJSONShape(t *testing.T) {
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	invoice := Invoice{
		ID:            1,
		CustomerID:    7,
		CustomerName:  "Acme Corp",
		InvoiceNumber: "INV-202609-0001",
		DueDate:       &due,
		Subtotal:      130.00,
		TaxAmount:     10.40,
		Total:         140.40,
		Status:        "draft",
		Items: []InvoiceItem{
			{ID: 1, InvoiceID: 1, Description: "Labor", Quantity: 2, UnitPrice: 50.00, Amount: 100.00},
		},
		JobIDs: []uint{3},
	}

	raw, err := json.Marshal(invoice)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "INV-202609-0001", decoded["invoice_number"])
	assert.Equal(t, "Acme Corp", decoded["customer_name"])
	assert.InDelta(t, 140.40, decoded["total"].(float64), 0.001)
	assert.Len(t, decoded["items"].([]interface{}), 1)
	assert.Len(t, decoded["job_ids"].([]interface{}), 1)

	// Associations are internal; only the derived projections go on the wire
	_, hasCustomer := decoded["Customer"]
	assert.False(t, hasCustomer)
	_, hasJobs := decoded["Jobs"]
	assert.False(t, hasJobs)
}

func TestJobJSONShape(t *testing.T) {
	techID := uint(2)
	techName := "Mike Rodriguez"
	job := Job{
		ID:                     4,
		CustomerID:             1,
		CustomerName:           "Acme Corp",
		Title:                  "Fix HVAC",
		Status:                 "scheduled",
		Priority:               "high",
		AssignedTechnicianID:   &techID,
		AssignedTechnicianName: &techName,
	}

	raw, err := json.Marshal(job)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Acme Corp", decoded["customer_name"])
	assert.Equal(t, "Mike Rodriguez", decoded["assigned_technician_name"])
	assert.Nil(t, decoded["scheduled_date"])
	assert.Nil(t, decoded["completed_date"])
}
