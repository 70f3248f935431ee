package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tatianab/spellforge/internal/catalog"
	"github.com/tatianab/spellforge/internal/config"
	"github.com/tatianab/spellforge/internal/engine"
	"github.com/tatianab/spellforge/internal/forge"
	"github.com/tatianab/spellforge/internal/models"
	"gopkg.in/yaml.v3"
)

const usage = `usage: forge <command> [flags]

commands:
  list      list catalog components (-category, -tier, -element, -q)
  preview   resolve a selection and print the draft and its cost
  finalize  validate a selection and generate the spell
  prompts   manage saved prompts (list | save | delete)`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	models.SaveDir = cfg.SaveDir

	if err := run(cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "list":
		return runList(cfg, args[1:], out)
	case "preview":
		return runPreview(cfg, args[1:], out)
	case "finalize":
		return runFinalize(cfg, args[1:], out)
	case "prompts":
		return runPrompts(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func runList(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	category := fs.String("category", "", "only this category")
	tier := fs.Int("tier", 0, "only this tier (1-5)")
	element := fs.String("element", "", "only this element")
	query := fs.String("q", "", "case-insensitive name search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	matches := cat.Filter(catalog.Filter{
		Category: models.Category(*category),
		Tier:     *tier,
		Element:  models.Element(*element),
		Query:    *query,
	})
	if len(matches) == 0 {
		fmt.Fprintln(out, "no components match")
		if hints := cat.Suggest(*query, 3); len(hints) > 0 {
			fmt.Fprintf(out, "did you mean: %s\n", strings.Join(hints, ", "))
		}
		return nil
	}
	for _, c := range matches {
		el := string(c.Element)
		if el == "" {
			el = "-"
		}
		fmt.Fprintf(out, "%s\t%s\tT%d\t%s\t%s\n", c.ID, c.DisplayName(), c.Tier, c.Category, el)
	}
	return nil
}

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

type selectionFlags struct {
	fs      *flag.FlagSet
	selectS *string
	params  multiFlag
	invest  multiFlag
	wallet  *string
	saved   *string
}

func newSelectionFlags(name string) *selectionFlags {
	sf := &selectionFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	sf.selectS = sf.fs.String("select", "", "comma-separated component ids, in selection order")
	sf.fs.Var(&sf.params, "param", "component.key=value (repeatable)")
	sf.fs.Var(&sf.invest, "invest", "item=quantity of manually invested resources (repeatable)")
	sf.wallet = sf.fs.String("wallet", "", "wallet YAML file (default: the profile's saved wallet)")
	sf.saved = sf.fs.String("saved", "", "saved prompt id to reuse")
	return sf
}

// input builds the forge input plus the prompt text carried by -saved.
func (sf *selectionFlags) input(cfg *config.Config) (forge.Input, string, error) {
	var prompt string
	ids := splitList(*sf.selectS)

	if *sf.saved != "" {
		prompts, err := models.ListPrompts()
		if err != nil {
			return forge.Input{}, "", err
		}
		i := slices.IndexFunc(prompts, func(p models.SavedPrompt) bool { return p.ID == *sf.saved })
		if i < 0 {
			return forge.Input{}, "", fmt.Errorf("no saved prompt %q", *sf.saved)
		}
		prompt = prompts[i].Text
		if len(ids) == 0 {
			ids = prompts[i].ComponentIDs
		}
	}

	sel, err := parseSelection(ids, sf.params)
	if err != nil {
		return forge.Input{}, "", err
	}
	investment, err := parseInvestment(sf.invest)
	if err != nil {
		return forge.Input{}, "", err
	}
	wallet, err := loadWallet(cfg, *sf.wallet)
	if err != nil {
		return forge.Input{}, "", err
	}

	return forge.Input{Selection: sel, Investment: investment, Wallet: wallet}, prompt, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSelection(ids []string, params []string) (models.Selection, error) {
	sel := models.Selection{}
	for _, id := range ids {
		sel = sel.Select(id)
	}
	for _, p := range params {
		target, value, ok := strings.Cut(p, "=")
		// Component ids may contain dots; parameter keys do not.
		dot := strings.LastIndex(target, ".")
		if !ok || dot < 0 {
			return nil, fmt.Errorf("invalid -param %q, want component.key=value", p)
		}
		id, key := target[:dot], target[dot+1:]
		if id == "" || key == "" {
			return nil, fmt.Errorf("invalid -param %q, want component.key=value", p)
		}
		if !sel.Contains(id) {
			return nil, fmt.Errorf("-param %q names a component that is not selected", p)
		}
		sel = sel.SetParam(id, key, value)
	}
	return sel, nil
}

func parseInvestment(entries []string) ([]models.ResourceCost, error) {
	var out []models.ResourceCost
	for _, e := range entries {
		item, raw, ok := strings.Cut(e, "=")
		qty, err := strconv.Atoi(strings.TrimSpace(raw))
		if !ok || strings.TrimSpace(item) == "" || err != nil || qty < 0 {
			return nil, fmt.Errorf("invalid -invest %q, want item=quantity", e)
		}
		out = append(out, models.ResourceCost{ItemID: strings.TrimSpace(item), Quantity: qty})
	}
	return out, nil
}

func loadWallet(cfg *config.Config, path string) (models.Wallet, error) {
	if path != "" {
		return models.LoadWalletFile(path)
	}
	w, err := models.LoadWallet(cfg.Profile)
	if os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: no wallet saved for profile %q; using an empty wallet\n", cfg.Profile)
		return models.Wallet{Inventory: map[string]int{}}, nil
	}
	return w, err
}

func loadCatalogs(cfg *config.Config) (*catalog.Catalog, *catalog.ItemTable, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.ItemsPath == "" {
		return cat, nil, nil
	}
	items, err := catalog.LoadItemTable(cfg.ItemsPath)
	if os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: item table %s not found\n", cfg.ItemsPath)
		return cat, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load item table: %w", err)
	}
	return cat, items, nil
}

type previewReport struct {
	Name          string                        `yaml:"name,omitempty"`
	Draft         models.Draft                  `yaml:"draft"`
	Params        map[string]models.BoundParams `yaml:"params,omitempty"`
	Affordability forge.Affordability           `yaml:"affordability"`
	Warnings      []string                      `yaml:"warnings,omitempty"`
}

func computePreview(cfg *config.Config, sf *selectionFlags, args []string) (forge.Preview, string, error) {
	if err := sf.fs.Parse(args); err != nil {
		return forge.Preview{}, "", err
	}
	cat, items, err := loadCatalogs(cfg)
	if err != nil {
		return forge.Preview{}, "", err
	}
	in, prompt, err := sf.input(cfg)
	if err != nil {
		return forge.Preview{}, "", err
	}
	return forge.Compute(cat, items, in), prompt, nil
}

func runPreview(cfg *config.Config, args []string, out io.Writer) error {
	p, _, err := computePreview(cfg, newSelectionFlags("preview"), args)
	if err != nil {
		return err
	}
	return writeYAML(out, previewReport{
		Name:          p.Draft.Name(),
		Draft:         p.Draft,
		Params:        p.Params,
		Affordability: p.Affordability,
		Warnings:      p.Warnings,
	})
}

func runFinalize(cfg *config.Config, args []string, out io.Writer) error {
	sf := newSelectionFlags("finalize")
	promptFlag := sf.fs.String("prompt", "", "free-text guidance for the generator")
	timeout := sf.fs.Duration("timeout", 2*time.Minute, "give up on the generator after this long")
	dryRun := sf.fs.Bool("dry-run", false, "print the payload instead of calling the generator")

	p, saved, err := computePreview(cfg, sf, args)
	if err != nil {
		return err
	}
	for _, w := range p.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	prompt := *promptFlag
	if prompt == "" {
		prompt = saved
	}
	req, err := forge.Finalize(p, prompt)
	if err != nil {
		return err
	}
	if *dryRun {
		return writeYAML(out, req)
	}

	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close()

	spell, err := eng.GenerateSpell(ctx, req)
	if err != nil {
		return fmt.Errorf("generate spell: %w", err)
	}
	return writeYAML(out, spell)
}

func runPrompts(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: forge prompts list | save -name N -text T [-select a,b] | delete -id ID")
	}

	switch args[0] {
	case "list":
		prompts, err := models.ListPrompts()
		if err != nil {
			return err
		}
		for _, p := range prompts {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", p.ID, p.Timestamp.Format(time.RFC3339), p.Name, strings.Join(p.ComponentIDs, ","))
		}
		return nil

	case "save":
		fs := flag.NewFlagSet("prompts save", flag.ContinueOnError)
		name := fs.String("name", "", "prompt name")
		text := fs.String("text", "", "prompt text")
		sel := fs.String("select", "", "comma-separated component ids")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if strings.TrimSpace(*name) == "" {
			return errors.New("-name is required")
		}
		p, err := models.SavePrompt(models.SavedPrompt{Name: *name, Text: *text, ComponentIDs: splitList(*sel)})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, p.ID)
		return nil

	case "delete":
		fs := flag.NewFlagSet("prompts delete", flag.ContinueOnError)
		id := fs.String("id", "", "prompt id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		removed, err := models.DeletePrompt(*id)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no saved prompt %q", *id)
		}
		return nil

	default:
		return fmt.Errorf("unknown prompts command %q", args[0])
	}
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
