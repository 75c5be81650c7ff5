package persist

import (
	"encoding/json"

	"GroceryHub/internal/grocery"
)

// DecodeDocument parses a persisted document. Legacy documents are just the
// stores mapping with no wrapper keys; they decode as catalog-only with
// defaults for everything else.
func DecodeDocument(b []byte) (grocery.Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return grocery.Document{}, err
	}

	if _, ok := probe["stores"]; !ok {
		var stores map[string][]grocery.Item
		if err := json.Unmarshal(b, &stores); err != nil {
			return grocery.Document{}, err
		}
		return grocery.Document{
			Stores: stores,
			Budget: grocery.DefaultBudget,
		}, nil
	}

	var doc grocery.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return grocery.Document{}, err
	}
	if doc.Budget == 0 {
		doc.Budget = grocery.DefaultBudget
	}
	return doc, nil
}
