package main

import (
	"context"
	"log"
	"os"

	"libstack/app"
	"libstack/config"
	"libstack/db"
	"libstack/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(application)

	repo := db.NewRepo(application.DB, application.LoanPolicy())
	app.BootstrapFirstAdmin(context.Background(), application.Config, repo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
