package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskshop/internal/config"
	"github.com/jask/jaskshop/internal/database"
	"github.com/jask/jaskshop/internal/database/repository"
	"github.com/jask/jaskshop/internal/service"
	"github.com/jask/jaskshop/internal/store"
	"github.com/jask/jaskshop/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	saleRepo := repository.NewSaleRepo(db)

	inv, err := service.NewInventory(
		store.NewCatalogStore(cfg.Store.CatalogPath),
		store.NewCartStore(cfg.Store.CartPath),
		saleRepo,
	)
	if err != nil {
		log.Fatalf("load inventory: %v", err)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, inv, saleRepo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
