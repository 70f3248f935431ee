package models

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SaveDir is where wallets and saved prompts live.
var SaveDir = ".saves"

const promptsFile = "prompts.yaml"

// SaveWallet writes a wallet snapshot for the named profile.
func SaveWallet(name string, w Wallet) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(w)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "wallet.yaml"), data, 0644)
}

// LoadWallet reads the wallet snapshot for the named profile.
func LoadWallet(name string) (Wallet, error) {
	return LoadWalletFile(filepath.Join(SaveDir, name, "wallet.yaml"))
}

// LoadWalletFile reads a wallet snapshot from an explicit path.
func LoadWalletFile(path string) (Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wallet{}, err
	}

	var w Wallet
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Wallet{}, fmt.Errorf("parse wallet %s: %w", path, err)
	}
	if w.Inventory == nil {
		w.Inventory = map[string]int{}
	}
	return w, nil
}

// ListPrompts returns saved prompts, oldest first.
func ListPrompts() ([]SavedPrompt, error) {
	data, err := os.ReadFile(filepath.Join(SaveDir, promptsFile))
	if os.IsNotExist(err) {
		return []SavedPrompt{}, nil
	}
	if err != nil {
		return nil, err
	}

	var prompts []SavedPrompt
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("parse saved prompts: %w", err)
	}
	slices.SortStableFunc(prompts, func(a, b SavedPrompt) int { return a.Timestamp.Compare(b.Timestamp) })
	return prompts, nil
}

// SavePrompt stores a new prompt, assigning its id and timestamp.
func SavePrompt(p SavedPrompt) (SavedPrompt, error) {
	prompts, err := ListPrompts()
	if err != nil {
		return SavedPrompt{}, err
	}

	p.ID = uuid.NewString()
	p.Timestamp = time.Now().UTC()
	p.ComponentIDs = slices.Clone(p.ComponentIDs)
	prompts = append(prompts, p)

	if err := writePrompts(prompts); err != nil {
		return SavedPrompt{}, err
	}
	return p, nil
}

// DeletePrompt removes the prompt with the given id. It reports whether one was removed.
func DeletePrompt(id string) (bool, error) {
	prompts, err := ListPrompts()
	if err != nil {
		return false, err
	}

	n := len(prompts)
	prompts = slices.DeleteFunc(prompts, func(p SavedPrompt) bool { return p.ID == id })
	if len(prompts) == n {
		return false, nil
	}
	return true, writePrompts(prompts)
}

func writePrompts(prompts []SavedPrompt) error {
	if err := os.MkdirAll(SaveDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(prompts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(SaveDir, promptsFile), data, 0644)
}
