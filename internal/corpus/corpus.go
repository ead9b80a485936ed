package corpus

import (
	"embed"
	"fmt"
	"io/fs"
	"math/rand"
	"sort"
	"strings"
	"sync"
)

//go:embed texts/*.txt
var textsFS embed.FS

// Catalog is an immutable id-to-text mapping. Text content is fixed per id
// for the lifetime of the process, so a catalog is safe to share across
// evaluation workers without copying.
type Catalog struct {
	ids   []string
	texts map[string]string
}

// NewCatalog builds a catalog from explicit texts, mainly for tests.
func NewCatalog(texts map[string]string) (*Catalog, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("at least one source text is required")
	}
	ids := make([]string, 0, len(texts))
	copied := make(map[string]string, len(texts))
	for id, text := range texts {
		if id == "" {
			return nil, fmt.Errorf("source text id is required")
		}
		ids = append(ids, id)
		copied[id] = text
	}
	sort.Strings(ids)
	return &Catalog{ids: ids, texts: copied}, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog of embedded public-domain texts.
func Default() *Catalog {
	defaultOnce.Do(func() {
		texts := map[string]string{}
		entries, err := fs.ReadDir(textsFS, "texts")
		if err != nil {
			panic(fmt.Sprintf("corpus: read embedded texts: %v", err))
		}
		for _, entry := range entries {
			data, err := textsFS.ReadFile("texts/" + entry.Name())
			if err != nil {
				panic(fmt.Sprintf("corpus: read embedded text %s: %v", entry.Name(), err))
			}
			id := strings.TrimSuffix(entry.Name(), ".txt")
			texts[id] = strings.TrimSpace(string(data))
		}
		catalog, err := NewCatalog(texts)
		if err != nil {
			panic(fmt.Sprintf("corpus: build default catalog: %v", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// Text resolves a source text by id.
func (c *Catalog) Text(id string) (string, error) {
	text, ok := c.texts[id]
	if !ok {
		return "", fmt.Errorf("unknown source text id: %s", id)
	}
	return text, nil
}

// RandomID draws a source text id uniformly.
func (c *Catalog) RandomID(rng *rand.Rand) string {
	return c.ids[rng.Intn(len(c.ids))]
}

// IDs lists the available ids in sorted order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}
