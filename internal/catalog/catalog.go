package catalog

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// WorkItem is one billable work type for a client: descriptive text plus unit price.
type WorkItem struct {
	Content string          `json:"content"`
	Price   decimal.Decimal `json:"price"`
}

// Catalog is the static client -> work-type table. It is loaded once at boot
// and never mutated afterwards; components receive it as a dependency.
type Catalog struct {
	clients map[string]map[string]WorkItem
}

// New builds a catalog from a raw table, copying it so later changes to the
// argument cannot leak in.
func New(table map[string]map[string]WorkItem) *Catalog {
	clients := make(map[string]map[string]WorkItem, len(table))
	for client, items := range table {
		copied := make(map[string]WorkItem, len(items))
		for name, item := range items {
			copied[name] = item
		}
		clients[client] = copied
	}
	return &Catalog{clients: clients}
}

// LoadFile reads a JSON catalog of the shape
// {"client": {"work type": {"content": "...", "price": 100}}}.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table map[string]map[string]WorkItem
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, err
	}
	return New(table), nil
}

// Clients returns all catalog client names, sorted.
func (c *Catalog) Clients() []string {
	names := make([]string, 0, len(c.clients))
	for name := range c.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WorkTypesFor returns the work-type table for a client, or an empty map for
// unknown clients. The result is a copy.
func (c *Catalog) WorkTypesFor(client string) map[string]WorkItem {
	items := c.clients[client]
	out := make(map[string]WorkItem, len(items))
	for name, item := range items {
		out[name] = item
	}
	return out
}

// Lookup finds a single work item for a client.
func (c *Catalog) Lookup(client, workType string) (WorkItem, bool) {
	items, ok := c.clients[client]
	if !ok {
		return WorkItem{}, false
	}
	item, ok := items[workType]
	return item, ok
}
