package catalog

import (
	"errors"
	"os"

	"github.com/tidwall/gjson"
)

// Item is one row of the item master table.
type Item struct {
	ID   string
	Name string
	Kind string
}

// ItemTable indexes the item master table by identifier. A nil table knows every item,
// which disables unknown-item warnings when no table was loaded.
type ItemTable struct {
	items []Item
	byID  map[string]int
}

// LoadItemTable reads a JSON item table from disk.
func LoadItemTable(path string) (*ItemTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseItemTable(data)
}

// ParseItemTable accepts either {"items": [...]} or a bare array of objects with
// "id", "name" and "kind" fields. Rows without an id are skipped.
func ParseItemTable(data []byte) (*ItemTable, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("item table is not valid JSON")
	}

	rows := gjson.GetBytes(data, "items")
	if !rows.Exists() {
		rows = gjson.ParseBytes(data)
	}
	if !rows.IsArray() {
		return nil, errors.New("item table must be an array or an object with an items array")
	}

	t := &ItemTable{byID: make(map[string]int)}
	rows.ForEach(func(_, v gjson.Result) bool {
		id := v.Get("id").String()
		if id == "" {
			return true
		}
		if _, dup := t.byID[id]; dup {
			return true
		}
		t.byID[id] = len(t.items)
		t.items = append(t.items, Item{
			ID:   id,
			Name: v.Get("name").String(),
			Kind: v.Get("kind").String(),
		})
		return true
	})
	return t, nil
}

func (t *ItemTable) Known(id string) bool {
	if t == nil {
		return true
	}
	_, ok := t.byID[id]
	return ok
}

// Name returns the display name of an item, or its id when the table has none.
func (t *ItemTable) Name(id string) string {
	if t == nil {
		return id
	}
	if i, ok := t.byID[id]; ok && t.items[i].Name != "" {
		return t.items[i].Name
	}
	return id
}

func (t *ItemTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}
