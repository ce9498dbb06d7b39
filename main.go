package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/config"
	"github.com/kendall-kelly/field-service-api/controllers"
	"github.com/kendall-kelly/field-service-api/models"
)

func main() {
	log.Println("Starting Field Service API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := migrateDatabase(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := seedDatabase(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// migrateDatabase creates or updates the five CRM tables
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Technician{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Job{},
	)
}

// seedDatabase loads the starter technicians and customers when the tables
// are empty, so a fresh install has data to show on the dashboard
func seedDatabase(db *gorm.DB) error {
	var technicianCount int64
	if err := db.Model(&models.Technician{}).Count(&technicianCount).Error; err != nil {
		return err
	}
	if technicianCount == 0 {
		technicians := []models.Technician{
			{Name: "Tom Martinez", Email: "tom@fieldservice.com", Phone: "(555) 111-2222", Specialization: "HVAC", HourlyRate: 75, HireDate: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), IsActive: true},
			{Name: "Lisa Park", Email: "lisa@fieldservice.com", Phone: "(555) 222-3333", Specialization: "Electrical", HourlyRate: 80, HireDate: time.Date(2019, 7, 22, 0, 0, 0, 0, time.UTC), IsActive: true},
			{Name: "James Wilson", Email: "james@fieldservice.com", Phone: "(555) 333-4444", Specialization: "Plumbing", HourlyRate: 70, HireDate: time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC), IsActive: true},
			{Name: "Maria Garcia", Email: "maria@fieldservice.com", Phone: "(555) 444-5555", Specialization: "General Maintenance", HourlyRate: 65, HireDate: time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), IsActive: true},
		}
		if err := db.Create(&technicians).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d technicians", len(technicians))
	}

	var customerCount int64
	if err := db.Model(&models.Customer{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if customerCount == 0 {
		customers := []models.Customer{
			{Name: "Acme Corp", ContactPerson: "John Smith", Email: "john@acme.com", Phone: "(555) 123-4567", Address: "123 Main St, City, ST 12345", IsActive: true},
			{Name: "Tech Solutions Inc", ContactPerson: "Sarah Johnson", Email: "sarah@techsol.com", Phone: "(555) 234-5678", Address: "456 Oak Ave, Town, ST 23456", IsActive: true},
			{Name: "Green Valley Restaurant", ContactPerson: "Mike Chen", Email: "mike@greenvalley.com", Phone: "(555) 345-6789", Address: "789 Pine Rd, Village, ST 34567", IsActive: true},
		}
		if err := db.Create(&customers).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d customers", len(customers))
	}

	return nil
}

// setupRouter wires the full API surface
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		// Health check endpoint
		api.GET("/health", healthCheck)

		// Database status endpoint
		api.GET("/database/status", databaseStatus)

		api.GET("/customers", controllers.ListCustomers)
		api.GET("/customers/:id", controllers.GetCustomer)
		api.POST("/customers", controllers.CreateCustomer)
		api.PUT("/customers/:id", controllers.UpdateCustomer)
		api.DELETE("/customers/:id", controllers.DeleteCustomer)

		api.GET("/technicians", controllers.ListTechnicians)
		api.GET("/technicians/:id", controllers.GetTechnician)
		api.POST("/technicians", controllers.CreateTechnician)
		api.PUT("/technicians/:id", controllers.UpdateTechnician)
		api.DELETE("/technicians/:id", controllers.DeleteTechnician)

		api.GET("/jobs", controllers.ListJobs)
		api.GET("/jobs/:id", controllers.GetJob)
		api.POST("/jobs", controllers.CreateJob)
		api.PUT("/jobs/:id", controllers.UpdateJob)
		api.DELETE("/jobs/:id", controllers.DeleteJob)

		api.GET("/invoices", controllers.ListInvoices)
		api.GET("/invoices/:id", controllers.GetInvoice)
		api.POST("/invoices", controllers.CreateInvoice)
		api.PUT("/invoices/:id", controllers.UpdateInvoice)
		api.DELETE("/invoices/:id", controllers.DeleteInvoice)
		api.GET("/invoices/:id/pdf", controllers.GenerateInvoicePDF)

		api.GET("/dashboard/stats", controllers.GetDashboardStats)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Field Service API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// List tables through the migrator so this works on both dialects
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
