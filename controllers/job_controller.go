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

// CreateJobRequest represents the request body for creating a job
type CreateJobRequest struct {
	CustomerID           uint       `json:"customer_id" binding:"required"`
	Title                string     `json:"title" binding:"required,max=200"`
	Description          string     `json:"description" binding:"max=2000"`
	Priority             string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	ScheduledDate        *time.Time `json:"scheduled_date"`
	AssignedTechnicianID *uint      `json:"assigned_technician_id"`
	EstimatedHours       float64    `json:"estimated_hours" binding:"omitempty,gte=0"`
}

// UpdateJobRequest represents the request body for updating a job.
// Updates are full replace of the mutable fields; the customer and invoice
// references are not touched.
type UpdateJobRequest struct {
	Title                string     `json:"title" binding:"required,max=200"`
	Description          string     `json:"description" binding:"max=2000"`
	Status               string     `json:"status" binding:"required,oneof=pending scheduled in-progress completed cancelled"`
	Priority             string     `json:"priority" binding:"required,oneof=low medium high urgent"`
	ScheduledDate        *time.Time `json:"scheduled_date"`
	CompletedDate        *time.Time `json:"completed_date"`
	AssignedTechnicianID *uint      `json:"assigned_technician_id"`
	EstimatedHours       float64    `json:"estimated_hours" binding:"omitempty,gte=0"`
	ActualHours          float64    `json:"actual_hours" binding:"omitempty,gte=0"`
}

// ListJobs handles GET /api/jobs with optional filters: customerId,
// technicianId, or startDate+endDate. Filters are mutually exclusive with
// precedence in that order.
func ListJobs(c *gin.Context) {
	filter, ok := parseJobFilter(c)
	if !ok {
		return
	}

	svc := services.NewJobService(config.GetDB())
	jobs, err := svc.ListJobs(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list jobs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// GetJob handles GET /api/jobs/:id
func GetJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewJobService(config.GetDB())
	job, err := svc.GetJob(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "Job not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// CreateJob handles POST /api/jobs
func CreateJob(c *gin.Context) {
	var req CreateJobRequest
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

	svc := services.NewJobService(config.GetDB())
	job, err := svc.CreateJob(services.CreateJobInput{
		CustomerID:           req.CustomerID,
		Title:                req.Title,
		Description:          req.Description,
		Priority:             req.Priority,
		ScheduledDate:        req.ScheduledDate,
		AssignedTechnicianID: req.AssignedTechnicianID,
		EstimatedHours:       req.EstimatedHours,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job",
			},
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/jobs/%d", job.ID))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJob handles PUT /api/jobs/:id
func UpdateJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
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

	svc := services.NewJobService(config.GetDB())
	job, err := svc.UpdateJob(id, services.UpdateJobInput{
		Title:                req.Title,
		Description:          req.Description,
		Status:               req.Status,
		Priority:             req.Priority,
		ScheduledDate:        req.ScheduledDate,
		CompletedDate:        req.CompletedDate,
		AssignedTechnicianID: req.AssignedTechnicianID,
		EstimatedHours:       req.EstimatedHours,
		ActualHours:          req.ActualHours,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "Job not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update job",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// DeleteJob handles DELETE /api/jobs/:id - hard delete
func DeleteJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewJobService(config.GetDB())
	if err := svc.DeleteJob(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "Job not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete job",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// parseJobFilter reads the mutually exclusive list filters from the query
// string. On a malformed value it writes a 400 response and returns false.
func parseJobFilter(c *gin.Context) (services.JobFilter, bool) {
	var filter services.JobFilter

	if v := c.Query("customerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondBadQueryParam(c, "customerId")
			return filter, false
		}
		customerID := uint(id)
		filter.CustomerID = &customerID
		return filter, true
	}

	if v := c.Query("technicianId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondBadQueryParam(c, "technicianId")
			return filter, false
		}
		technicianID := uint(id)
		filter.TechnicianID = &technicianID
		return filter, true
	}

	startRaw := c.Query("startDate")
	endRaw := c.Query("endDate")
	if startRaw != "" && endRaw != "" {
		start, err := parseDateParam(startRaw)
		if err != nil {
			respondBadQueryParam(c, "startDate")
			return filter, false
		}
		end, err := parseDateParam(endRaw)
		if err != nil {
			respondBadQueryParam(c, "endDate")
			return filter, false
		}
		// A date-only end bound covers the whole day
		if end.Equal(end.Truncate(24 * time.Hour)) {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter, true
}

// parseDateParam accepts RFC 3339 timestamps or plain dates
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func respondBadQueryParam(c *gin.Context, name string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": fmt.Sprintf("Invalid value for query parameter %q", name),
		},
	})
}
