package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/spellforge/internal/catalog"
	"github.com/tatianab/spellforge/internal/config"
	"github.com/tatianab/spellforge/internal/engine"
	"github.com/tatianab/spellforge/internal/models"
)

// Start loads configuration, the catalog, the item table and the player's wallet, then
// runs the forge screen. Without an API key the forge still previews drafts.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	models.SaveDir = cfg.SaveDir

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	var items *catalog.ItemTable
	if cfg.ItemsPath != "" {
		items, err = catalog.LoadItemTable(cfg.ItemsPath)
		if os.IsNotExist(err) {
			fmt.Printf("Warning: item table %s not found; unknown items will not be flagged\n", cfg.ItemsPath)
		} else if err != nil {
			return fmt.Errorf("load item table: %w", err)
		}
	}

	wallet, err := models.LoadWallet(cfg.Profile)
	if os.IsNotExist(err) {
		fmt.Printf("Warning: no wallet saved for profile %q; starting empty\n", cfg.Profile)
		wallet = models.Wallet{Inventory: map[string]int{}}
	} else if err != nil {
		return err
	}

	if cfg.RequireAPIKey() != nil {
		return Run(nil, cat, items, wallet)
	}

	eng, err := engine.NewEngine(context.Background(), cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer eng.Close()

	return Run(eng, cat, items, wallet)
}
