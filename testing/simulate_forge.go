package main

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/spellforge/internal/catalog"
	"github.com/tatianab/spellforge/internal/config"
	"github.com/tatianab/spellforge/internal/engine"
	"github.com/tatianab/spellforge/internal/forge"
	"github.com/tatianab/spellforge/internal/models"
)

const maxRounds = 5

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		log.Fatal(err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	var items *catalog.ItemTable
	if cfg.ItemsPath != "" {
		if items, err = catalog.LoadItemTable(cfg.ItemsPath); err != nil {
			log.Fatalf("Failed to load item table: %v", err)
		}
	}
	wallet, err := models.LoadWalletFile("data/wallet.yaml")
	if err != nil {
		log.Fatalf("Failed to load wallet: %v", err)
	}

	// The spell generator under test
	spellEngine, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		log.Fatalf("Failed to create spell engine: %v", err)
	}
	defer spellEngine.Close()

	// The player LLM picks components
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.Model)

	for round := 1; round <= maxRounds; round++ {
		fmt.Printf("--- Round %d ---\n", round)

		ids := getPlayerSelection(ctx, playerModel, cat, wallet)
		fmt.Printf("Player selected: %s\n", strings.Join(ids, ", "))

		sel := models.Selection{}
		for _, id := range ids {
			sel = sel.Select(id)
		}
		in := forge.Input{Selection: sel, Wallet: wallet}
		preview := forge.Compute(cat, items, in)

		// Recomputing from the same input must give the same draft.
		if again := forge.Compute(cat, items, in); !reflect.DeepEqual(again.Draft, preview.Draft) {
			log.Fatalf("Non-deterministic draft for %v", ids)
		}
		if preview.Draft.ManaCost < 0 {
			log.Fatalf("Negative mana cost %d for %v", preview.Draft.ManaCost, ids)
		}

		for _, w := range preview.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		d := preview.Draft
		fmt.Printf("Draft: %q damage=%d mana=%d element=%s tags=%v\n", d.Name(), d.Damage, d.ManaCost, d.Element, d.Tags)
		fmt.Printf("Cost: gold=%d essence=%d resources=%v\n", d.GoldCost, d.EssenceCost, d.ResourceCost)

		req, err := forge.Finalize(preview, "")
		if err != nil {
			fmt.Printf("Cannot finalize: %v\n\n", err)
			continue
		}

		spell, err := spellEngine.GenerateSpell(ctx, req)
		if err != nil {
			fmt.Printf("Error generating spell: %v\n\n", err)
			continue
		}
		fmt.Printf("Spell: %s (%s) damage=%d mana=%d\n", spell.Name, spell.Element, spell.Damage, spell.ManaCost)
		fmt.Printf("%s\n\n", spell.Description)
	}
}

func getPlayerSelection(ctx context.Context, model *genai.GenerativeModel, cat *catalog.Catalog, wallet models.Wallet) []string {
	var lines []string
	for _, c := range cat.Components() {
		lines = append(lines, fmt.Sprintf("- %s (%s, tier %d, gold %d, essence %d)", c.ID, c.Category, c.Tier, c.GoldCost, c.EssenceCost))
	}

	prompt := fmt.Sprintf(`You are designing a spell in a fantasy crafting game.
Available components:
%s

Wallet: gold=%d essence=%d inventory=%v

Pick two to four component ids that make an interesting spell. Return ONLY the ids, comma separated.`,
		strings.Join(lines, "\n"),
		wallet.Gold,
		wallet.Essence,
		wallet.Inventory,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil || len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return []string{cat.Components()[0].ID}
	}

	var ids []string
	for _, id := range strings.Split(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
