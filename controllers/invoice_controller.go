package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/config"
	"github.com/kendall-kelly/field-service-api/services"
)

// CreateInvoiceItemRequest represents one line item on a new invoice
type CreateInvoiceItemRequest struct {
	Description string  `json:"description" binding:"required,max=200"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// CreateInvoiceRequest represents the request body for creating an invoice
type CreateInvoiceRequest struct {
	CustomerID uint                       `json:"customer_id" binding:"required"`
	DueDate    *time.Time                 `json:"due_date"`
	TaxRate    float64                    `json:"tax_rate" binding:"omitempty,gte=0"`
	Notes      string                     `json:"notes" binding:"max=1000"`
	Items      []CreateInvoiceItemRequest `json:"items" binding:"omitempty,dive"`
	JobIDs     []uint                     `json:"job_ids"`
}

// UpdateInvoiceRequest represents the request body for updating an invoice.
// Only due date, status, paid date and notes are mutable; any status within
// the fixed vocabulary is accepted, with no transition sequencing enforced.
type UpdateInvoiceRequest struct {
	DueDate  *time.Time `json:"due_date"`
	Status   string     `json:"status" binding:"required,oneof=draft sent paid overdue cancelled"`
	PaidDate *time.Time `json:"paid_date"`
	Notes    string     `json:"notes" binding:"max=1000"`
}

// ListInvoices handles GET /api/invoices with an optional customerId filter
func ListInvoices(c *gin.Context) {
	var customerID *uint
	if v := c.Query("customerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondBadQueryParam(c, "customerId")
			return
		}
		parsed := uint(id)
		customerID = &parsed
	}

	svc := services.NewInvoiceService(config.GetDB())
	invoices, err := svc.ListInvoices(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list invoices",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoices,
	})
}

// GetInvoice handles GET /api/invoices/:id
func GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewInvoiceService(config.GetDB())
	invoice, err := svc.GetInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVOICE_NOT_FOUND",
					"message": "Invoice not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load invoice",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// CreateInvoice handles POST /api/invoices
func CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	items := make([]services.CreateInvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.CreateInvoiceItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	svc := services.NewInvoiceService(config.GetDB())
	invoice, err := svc.CreateInvoice(services.CreateInvoiceInput{
		CustomerID: req.CustomerID,
		DueDate:    req.DueDate,
		TaxRate:    req.TaxRate,
		Notes:      req.Notes,
		Items:      items,
		JobIDs:     req.JobIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create invoice",
			},
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/invoices/%d", invoice.ID))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// UpdateInvoice handles PUT /api/invoices/:id
func UpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	svc := services.NewInvoiceService(config.GetDB())
	invoice, err := svc.UpdateInvoice(id, services.UpdateInvoiceInput{
		DueDate:  req.DueDate,
		Status:   req.Status,
		PaidDate: req.PaidDate,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVOICE_NOT_FOUND",
					"message": "Invoice not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update invoice",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// DeleteInvoice handles DELETE /api/invoices/:id. Linked jobs are unlinked,
// never deleted; the invoice's items go with it.
func DeleteInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewInvoiceService(config.GetDB())
	if err := svc.DeleteInvoice(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVOICE_NOT_FOUND",
					"message": "Invoice not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete invoice",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateInvoicePDF handles GET /api/invoices/:id/pdf - renders the invoice
// as a PDF attachment
func GenerateInvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewInvoiceService(config.GetDB())
	invoice, err := svc.GetInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVOICE_NOT_FOUND",
					"message": "Invoice not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load invoice",
			},
		})
		return
	}

	pdfBytes, err := services.GetPDFService().GenerateInvoicePDF(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PDF_GENERATION_ERROR",
				"message": "Failed to generate invoice PDF",
			},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", invoice.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
