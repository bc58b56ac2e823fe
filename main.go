package main

import (
	"tinyblog/config"
	"tinyblog/controllers"
	"tinyblog/models"
	"tinyblog/routes"
	"tinyblog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg, &models.User{}, &models.Post{})

	// Seed the built-in admin account before serving any request
	if err := controllers.SeedAdminUser(db, cfg); err != nil {
		utils.Sugar.Fatalf("admin seed failed: %v", err)
	}

	cache := utils.NewCache(cfg)

	r := routes.SetupRouter(cfg, db, cache)

	utils.Sugar.Infof("Starting server on port %s", cfg.AppPort)
	if err := utils.RunServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
