package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/andestrack/field-service-api/internal/config"
	"github.com/andestrack/field-service-api/internal/constants"
	"github.com/andestrack/field-service-api/internal/database"
	"github.com/andestrack/field-service-api/internal/events"
	"github.com/andestrack/field-service-api/internal/handlers"
	"github.com/andestrack/field-service-api/internal/middleware"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/andestrack/field-service-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	// The index pass queries pg_indexes and only applies to postgres
	if cfg.DBType == "postgres" {
		if err := database.MigrateDatabase(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Event publisher (disabled when no brokers configured)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	workOrderRepo := repository.NewWorkOrderRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)

	// Services
	materializer := services.NewMaterializerService(workOrderRepo, linkRepo, catalogRepo, instanceRepo, userRepo, publisher)
	authService := services.NewAuthService(userRepo)
	customerService := services.NewCustomerService(customerRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	linkageService := services.NewLinkageService(workOrderRepo, linkRepo, catalogRepo, instanceRepo, materializer)
	workOrderService := services.NewWorkOrderService(workOrderRepo, customerRepo, catalogRepo, userRepo, materializer, publisher)
	instanceService := services.NewInstanceService(instanceRepo, linkRepo, catalogRepo, publisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, linkageService)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService, linkageService)
	instanceHandler := handlers.NewInstanceHandler(instanceService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Field Service API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Customer routes (admin)
		customers := api.Group("/customers")
		customers.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("", customerHandler.ListCustomers)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.DeleteCustomer)
			customers.POST("/:id/faenas", customerHandler.CreateFaena)
			customers.GET("/:id/faenas", customerHandler.ListFaenas)
		}

		// Faena routes (admin)
		faenas := api.Group("/faenas")
		faenas.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			faenas.PUT("/:faenaId", customerHandler.UpdateFaena)
			faenas.DELETE("/:faenaId", customerHandler.DeleteFaena)
		}

		// Catalog routes (admin)
		servicesGroup := api.Group("/services")
		servicesGroup.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			servicesGroup.POST("", catalogHandler.CreateService)
			servicesGroup.GET("", catalogHandler.ListServices)
			servicesGroup.GET("/:id", catalogHandler.GetService)
			servicesGroup.PUT("/:id", catalogHandler.UpdateService)
			servicesGroup.POST("/:id/task-templates", catalogHandler.AddTaskTemplateToService)
			servicesGroup.PUT("/:id/task-templates/:linkId", catalogHandler.UpdateServiceTaskTemplate)
			servicesGroup.DELETE("/:id/task-templates/:linkId", catalogHandler.RemoveTaskTemplateFromService)
			servicesGroup.POST("/:id/dependencies", catalogHandler.CreateDependency)
			servicesGroup.GET("/:id/dependencies", catalogHandler.ListDependencies)
			servicesGroup.DELETE("/:id/dependencies/:depId", catalogHandler.DeleteDependency)
		}

		taskTemplates := api.Group("/task-templates")
		taskTemplates.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			taskTemplates.POST("", catalogHandler.CreateTaskTemplate)
			taskTemplates.GET("", catalogHandler.ListTaskTemplates)
			taskTemplates.GET("/:id", catalogHandler.GetTaskTemplate)
			taskTemplates.PUT("/:id", catalogHandler.UpdateTaskTemplate)
			taskTemplates.DELETE("/:id", catalogHandler.DeleteTaskTemplate)
			taskTemplates.POST("/:id/fields", catalogHandler.CreateFieldTemplate)
			taskTemplates.GET("/:id/fields", catalogHandler.ListFieldTemplates)
			taskTemplates.PUT("/:id/fields/:fieldId", catalogHandler.UpdateFieldTemplate)
			taskTemplates.DELETE("/:id/fields/:fieldId", catalogHandler.DeleteFieldTemplate)
		}

		lookups := api.Group("/lookups")
		lookups.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			lookups.POST("", catalogHandler.CreateLookupEntity)
			lookups.GET("/:id", catalogHandler.GetLookupEntity)
			lookups.DELETE("/:id", catalogHandler.DeleteLookupEntity)
			lookups.POST("/:id/options", catalogHandler.AddLookupOption)
			lookups.DELETE("/:id/options/:optionId", catalogHandler.DeleteLookupOption)
		}

		// Work order routes (admin)
		workOrders := api.Group("/work-orders")
		workOrders.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			workOrders.POST("", workOrderHandler.CreateWorkOrder)
			workOrders.GET("", workOrderHandler.ListWorkOrders)
			workOrders.GET("/:id", workOrderHandler.GetWorkOrder)
			workOrders.PATCH("/:id/status", workOrderHandler.UpdateWorkOrderStatus)
			workOrders.DELETE("/:id", workOrderHandler.DeleteWorkOrder)
			workOrders.GET("/:id/days", workOrderHandler.ListDays)
		}

		// Day routes: reads for any authenticated user, mutations admin-only
		days := api.Group("/days")
		days.Use(middleware.RequireAuth())
		{
			days.GET("/:id", workOrderHandler.GetDay)
			days.GET("/:id/applicable-tasks", workOrderHandler.GetApplicableTasks)
			days.GET("/:id/services", workOrderHandler.ListDayServices)
			days.GET("/:id/task-templates", workOrderHandler.ListDayTaskTemplates)
			days.GET("/:id/instances", instanceHandler.ListDayInstances)

			admin := days.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/:id/assign", workOrderHandler.AssignUsers)
				admin.POST("/:id/unassign", workOrderHandler.UnassignUsers)
				admin.POST("/:id/services", workOrderHandler.AddServiceToDay)
				admin.DELETE("/:id/services/:linkId", workOrderHandler.RemoveServiceFromDay)
				admin.POST("/:id/services/reorder", workOrderHandler.ReorderDayServices)
				admin.POST("/:id/task-templates", workOrderHandler.AddTaskTemplateToDay)
				admin.DELETE("/:id/task-templates/:linkId", workOrderHandler.RemoveTaskTemplateFromDay)
				admin.POST("/:id/task-templates/reorder", workOrderHandler.ReorderDayTaskTemplates)
			}
		}

		// Task instance routes (worker-facing)
		instances := api.Group("/instances")
		instances.Use(middleware.RequireAuth())
		{
			instances.GET("", instanceHandler.ListMyInstances)
			instances.GET("/:id", instanceHandler.GetInstance)
			instances.POST("/:id/start", instanceHandler.StartInstance)
			instances.POST("/:id/responses", instanceHandler.SaveFieldResponse)
			instances.POST("/:id/complete", instanceHandler.CompleteInstance)
			instances.POST("/:id/reopen", instanceHandler.ReopenInstance)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
