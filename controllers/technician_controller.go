package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/config"
	"github.com/kendall-kelly/field-service-api/services"
)

// CreateTechnicianRequest represents the request body for creating a technician
type CreateTechnicianRequest struct {
	Name           string    `json:"name" binding:"required,max=200"`
	Email          string    `json:"email" binding:"omitempty,email,max=200"`
	Phone          string    `json:"phone" binding:"max=20"`
	Specialization string    `json:"specialization" binding:"max=100"`
	HourlyRate     float64   `json:"hourly_rate" binding:"omitempty,gte=0"`
	HireDate       time.Time `json:"hire_date"`
}

// UpdateTechnicianRequest represents the request body for updating a technician
type UpdateTechnicianRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	Email          string  `json:"email" binding:"omitempty,email,max=200"`
	Phone          string  `json:"phone" binding:"max=20"`
	Specialization string  `json:"specialization" binding:"max=100"`
	HourlyRate     float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	IsActive       bool    `json:"is_active"`
}

// ListTechnicians handles GET /api/technicians - lists all active technicians
func ListTechnicians(c *gin.Context) {
	svc := services.NewTechnicianService(config.GetDB())
	technicians, err := svc.ListTechnicians()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list technicians",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    technicians,
	})
}

// GetTechnician handles GET /api/technicians/:id
func GetTechnician(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewTechnicianService(config.GetDB())
	technician, err := svc.GetTechnician(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TECHNICIAN_NOT_FOUND",
					"message": "Technician not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load technician",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    technician,
	})
}

// CreateTechnician handles POST /api/technicians
func CreateTechnician(c *gin.Context) {
	var req CreateTechnicianRequest
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

	svc := services.NewTechnicianService(config.GetDB())
	technician, err := svc.CreateTechnician(services.CreateTechnicianInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		HourlyRate:     req.HourlyRate,
		HireDate:       req.HireDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create technician",
			},
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/technicians/%d", technician.ID))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    technician,
	})
}

// UpdateTechnician handles PUT /api/technicians/:id
func UpdateTechnician(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateTechnicianRequest
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

	svc := services.NewTechnicianService(config.GetDB())
	technician, err := svc.UpdateTechnician(id, services.UpdateTechnicianInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		HourlyRate:     req.HourlyRate,
		IsActive:       req.IsActive,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TECHNICIAN_NOT_FOUND",
					"message": "Technician not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update technician",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    technician,
	})
}

// DeleteTechnician handles DELETE /api/technicians/:id - soft delete
func DeleteTechnician(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewTechnicianService(config.GetDB())
	if err := svc.DeleteTechnician(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TECHNICIAN_NOT_FOUND",
					"message": "Technician not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete technician",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
