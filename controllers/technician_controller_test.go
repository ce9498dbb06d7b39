package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/config"
	"github.com/kendall-kelly/field-service-api/models"
)

func setupTechnicianTestDB(t *testing.T) *gorm.DB {
	return setupCustomerTestDB(t)
}

func TestCreateTechnician(t *testing.T) {
	// Setup
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create technician",
			requestBody: map[string]interface{}{
				"name":           "Mike Rodriguez",
				"email":          "mike@fieldservice.com",
				"phone":          "(555) 201-1001",
				"specialization": "HVAC",
				"hourly_rate":    85.00,
				"hire_date":      "2024-01-15T00:00:00Z",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Mike Rodriguez", data["name"])
				assert.Equal(t, "HVAC", data["specialization"])
				assert.InDelta(t, 85.00, data["hourly_rate"].(float64), 0.001)
				assert.Equal(t, true, data["is_active"])
				assert.Equal(t, float64(0), data["active_job_count"])
			},
		},
		{
			name: "Fail with missing name",
			requestBody: map[string]interface{}{
				"specialization": "Electrical",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/technicians", CreateTechnician)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/technicians", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestGetTechnician_ActiveJobCount(t *testing.T) {
	// Setup
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	customer := models.Customer{Name: "Acme Corp", IsActive: true}
	db.Create(&customer)
	tech := models.Technician{Name: "Mike Rodriguez", HireDate: time.Now(), IsActive: true}
	db.Create(&tech)

	// Only scheduled and in-progress jobs count as active
	statuses := []string{"scheduled", "in-progress", "completed", "pending", "cancelled"}
	for _, status := range statuses {
		db.Create(&models.Job{
			CustomerID:           customer.ID,
			Title:                "Job " + status,
			Status:               status,
			Priority:             "medium",
			AssignedTechnicianID: &tech.ID,
		})
	}

	router := setupTestRouter()
	router.GET("/technicians/:id", GetTechnician)

	req, _ := http.NewRequest(http.MethodGet, "/technicians/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["active_job_count"])
}

func TestGetTechnician_NotFound(t *testing.T) {
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.GET("/technicians/:id", GetTechnician)

	req, _ := http.NewRequest(http.MethodGet, "/technicians/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "TECHNICIAN_NOT_FOUND", errorData["code"])
}

func TestListTechnicians_ExcludesSoftDeleted(t *testing.T) {
	// Setup
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	db.Create(&models.Technician{Name: "Mike Rodriguez", HireDate: time.Now(), IsActive: true})
	former := models.Technician{Name: "Former Tech", HireDate: time.Now(), IsActive: true}
	db.Create(&former)
	db.Model(&former).Update("is_active", false)

	router := setupTestRouter()
	router.GET("/technicians", ListTechnicians)

	req, _ := http.NewRequest(http.MethodGet, "/technicians", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Mike Rodriguez", first["name"])
}

func TestUpdateTechnician(t *testing.T) {
	// Setup
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	hireDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tech := models.Technician{Name: "Mike Rodriguez", Specialization: "HVAC", HourlyRate: 85.00, HireDate: hireDate, IsActive: true}
	db.Create(&tech)

	router := setupTestRouter()
	router.PUT("/technicians/:id", UpdateTechnician)

	body, _ := json.Marshal(map[string]interface{}{
		"name":           "Mike Rodriguez",
		"email":          "mike@fieldservice.com",
		"phone":          "(555) 201-1001",
		"specialization": "HVAC & Refrigeration",
		"hourly_rate":    92.50,
		"is_active":      true,
	})
	req, _ := http.NewRequest(http.MethodPut, "/technicians/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "HVAC & Refrigeration", data["specialization"])
	assert.InDelta(t, 92.50, data["hourly_rate"].(float64), 0.001)

	// Hire date is immutable through updates
	var stored models.Technician
	db.First(&stored, tech.ID)
	assert.WithinDuration(t, hireDate, stored.HireDate, time.Second)
}

func TestDeleteTechnician_SoftDelete(t *testing.T) {
	// Setup
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	tech := models.Technician{Name: "Mike Rodriguez", HireDate: time.Now(), IsActive: true}
	db.Create(&tech)

	router := setupTestRouter()
	router.DELETE("/technicians/:id", DeleteTechnician)
	router.GET("/technicians/:id", GetTechnician)

	req, _ := http.NewRequest(http.MethodDelete, "/technicians/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Still reachable by ID, flagged inactive
	req, _ = http.NewRequest(http.MethodGet, "/technicians/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_active"])
}

func TestDeleteTechnician_NotFound(t *testing.T) {
	db := setupTechnicianTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.DELETE("/technicians/:id", DeleteTechnician)

	req, _ := http.NewRequest(http.MethodDelete, "/technicians/77", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
