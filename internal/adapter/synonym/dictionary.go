package synonym

import (
	"strings"

	"paydocs/internal/port"
)

var _ port.SynonymDictionary = (*Dictionary)(nil)

// Dictionary expands keywords through a static synonym table. With an empty
// table it degrades to the identity expansion, which keeps the retrieval
// core usable without any external vocabulary.
type Dictionary struct {
	table map[string][]string
}

// New builds a dictionary from a keyword→synonyms table. Keys are matched
// case-insensitively.
func New(table map[string][]string) *Dictionary {
	normalized := make(map[string][]string, len(table))
	for k, v := range table {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Dictionary{table: normalized}
}

// ConvertToSynonyms returns the input keywords followed by their synonyms,
// de-duplicated case-insensitively and in first-appearance order.
func (d *Dictionary) ConvertToSynonyms(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))

	add := func(k string) {
		k = strings.TrimSpace(k)
		if k == "" {
			return
		}
		lower := strings.ToLower(k)
		if _, dup := seen[lower]; dup {
			return
		}
		seen[lower] = struct{}{}
		out = append(out, k)
	}

	for _, k := range keywords {
		add(k)
		for _, syn := range d.table[strings.ToLower(strings.TrimSpace(k))] {
			add(syn)
		}
	}
	return out
}
