package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"HomeSked/Controllers"
	"HomeSked/Scheduler"
	"HomeSked/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	engine := Scheduler.NewEngine(db)

	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	homeController := Controllers.NewHomeController(db)
	roomController := Controllers.NewRoomController(db)
	equipmentController := Controllers.NewEquipmentController(db, engine)
	taskController := Controllers.NewTaskController(db, engine)
	dashboardController := Controllers.NewDashboardController(db, engine)
	presetController := Controllers.NewPresetController()
	roomPresetController := Controllers.NewRoomPresetController()

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", middleware.Verify(db), authController.Me)
	auth.Get("/users", middleware.Verify(db), authController.Users)

	// Everything past this point requires a session
	protected := api.Use(middleware.Verify(db))

	// Home routes
	protected.Get("/homes", homeController.GetHomes)
	protected.Post("/homes", homeController.CreateHome)
	protected.Get("/homes/:id", homeController.GetHome)
	protected.Put("/homes/:id", homeController.UpdateHome)
	protected.Delete("/homes/:id", homeController.DeleteHome)

	// Room routes
	protected.Get("/rooms", roomController.GetRooms)
	protected.Post("/rooms", roomController.CreateRoom)
	protected.Get("/rooms/:id", roomController.GetRoom)
	protected.Put("/rooms/:id", roomController.UpdateRoom)
	protected.Delete("/rooms/:id", roomController.DeleteRoom)

	// Equipment routes
	protected.Get("/equipment", equipmentController.GetEquipment)
	protected.Post("/equipment", equipmentController.CreateEquipment)
	protected.Get("/equipment/:id", equipmentController.GetEquipmentByID)
	protected.Put("/equipment/:id", equipmentController.UpdateEquipment)
	protected.Patch("/equipment/:id/usage", equipmentController.UpdateUsage)
	protected.Delete("/equipment/:id", equipmentController.DeleteEquipment)

	// Task routes
	protected.Get("/tasks", taskController.GetTasks)
	protected.Post("/tasks", taskController.CreateTask)
	protected.Get("/tasks/:id", taskController.GetTask)
	protected.Put("/tasks/:id", taskController.UpdateTask)
	protected.Delete("/tasks/:id", taskController.DeleteTask)
	protected.Post("/tasks/:id/complete", taskController.CompleteTask)
	protected.Get("/tasks/:id/history", taskController.GetHistory)
	protected.Get("/tasks/:id/history/export", taskController.ExportHistory)
	protected.Put("/tasks/:id/completions/:completionId", taskController.EditCompletion)
	protected.Delete("/tasks/:id/completions/:completionId", taskController.DeleteCompletion)

	// Dashboard
	protected.Get("/dashboard", dashboardController.GetDashboard)

	// Preset catalogs
	protected.Get("/presets", presetController.GetPresets)
	protected.Get("/presets/:name", presetController.GetPreset)
	protected.Get("/room-presets", roomPresetController.GetRoomPresets)
	protected.Get("/room-presets/:name", roomPresetController.GetRoomPreset)
}

func FiberConfig(db *gorm.DB) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, db)

	// Serve the SPA; unknown paths outside /api fall back to the index
	app.Static("/", "./public", fiber.Static{Compress: true})
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile("./public/index.html")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	app.Listen(":" + port)
}
