package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c := Default()

	item, ok := c.Lookup("로지비", "라벨작업")
	require.True(t, ok)
	assert.Equal(t, "단상자 바코드작업", item.Content)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(100)))

	_, ok = c.Lookup("로지비", "없는작업")
	assert.False(t, ok)
	_, ok = c.Lookup("없는거래처", "라벨작업")
	assert.False(t, ok)
}

func TestClientsSorted(t *testing.T) {
	c := New(map[string]map[string]WorkItem{
		"b": {}, "a": {}, "c": {},
	})
	assert.Equal(t, []string{"a", "b", "c"}, c.Clients())
}

func TestWorkTypesForReturnsCopy(t *testing.T) {
	c := Default()

	items := c.WorkTypesFor("비플레인")
	require.Len(t, items, 2)
	delete(items, "소분작업")

	// the catalog itself is untouched
	assert.Len(t, c.WorkTypesFor("비플레인"), 2)

	assert.Empty(t, c.WorkTypesFor("없는거래처"))
}

func TestNewCopiesInput(t *testing.T) {
	table := map[string]map[string]WorkItem{
		"client": {"work": {Content: "x", Price: decimal.NewFromInt(10)}},
	}
	c := New(table)
	table["client"]["work"] = WorkItem{Content: "mutated"}

	item, ok := c.Lookup("client", "work")
	require.True(t, ok)
	assert.Equal(t, "x", item.Content)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{"client-a": {"labeling": {"content": "barcode work", "price": 100}}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	item, ok := c.Lookup("client-a", "labeling")
	require.True(t, ok)
	assert.Equal(t, "barcode work", item.Content)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(100)))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
