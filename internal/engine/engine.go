package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/spellforge/internal/models"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/generate_spell.txt
var generateSpellPrompt string

var spellTemplate = template.Must(template.New("generate_spell").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(generateSpellPrompt))

// Engine hands finished drafts to Gemini and parses the generated spell.
// Retries and timeouts are left to the caller's context.
type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewEngine(ctx context.Context, apiKey, modelName string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	return &Engine{
		client: client,
		model:  model,
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// GenerateSpell sends the finalize payload to the model and returns the generated spell.
func (e *Engine) GenerateSpell(ctx context.Context, req models.FinalizeRequest) (*models.Spell, error) {
	prompt, err := renderSpellPrompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from Gemini")
	}

	return parseSpell(string(text), req.Draft)
}

func renderSpellPrompt(req models.FinalizeRequest) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Draft      models.Draft
		Components []string
		Prompt     string
	}{
		Draft:      req.Draft,
		Components: req.Selection.IDs(),
		Prompt:     req.Prompt,
	}
	if err := spellTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseSpell reads the model's YAML reply. Numbers the model dropped are filled in from
// the draft so the spell never disagrees with what the player paid for.
func parseSpell(text string, draft models.Draft) (*models.Spell, error) {
	cleanYAML := strings.TrimSpace(text)
	cleanYAML = strings.TrimPrefix(cleanYAML, "```yaml")
	cleanYAML = strings.TrimPrefix(cleanYAML, "```")
	cleanYAML = strings.TrimSuffix(cleanYAML, "```")

	var spell models.Spell
	if err := yaml.Unmarshal([]byte(cleanYAML), &spell); err != nil {
		return nil, fmt.Errorf("failed to parse spell YAML: %w\nOutput was: %s", err, cleanYAML)
	}
	if strings.TrimSpace(spell.Name) == "" {
		return nil, fmt.Errorf("generated spell has no name\nOutput was: %s", cleanYAML)
	}

	if spell.Damage == 0 && draft.Damage != 0 {
		fmt.Printf("Warning: generated spell omitted damage, using draft value %d\n", draft.Damage)
		spell.Damage = draft.Damage
	}
	if spell.ManaCost == 0 && draft.ManaCost != 0 {
		fmt.Printf("Warning: generated spell omitted mana cost, using draft value %d\n", draft.ManaCost)
		spell.ManaCost = draft.ManaCost
	}
	if spell.Element == "" {
		spell.Element = draft.Element
	}
	return &spell, nil
}
