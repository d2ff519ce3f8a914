package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaultsSubstitutesCurrentMonth(t *testing.T) {
	now := time.Date(2024, time.February, 14, 9, 30, 0, 0, time.UTC)

	f := Filter{}.ApplyDefaults(now)
	assert.Equal(t, "2024-02-01", f.StartDate)
	assert.Equal(t, "2024-02-29", f.EndDate) // leap year
	assert.Empty(t, f.Author)
	assert.Empty(t, f.Keyword)
}

func TestApplyDefaultsKeepsExplicitConstraints(t *testing.T) {
	now := time.Date(2024, time.February, 14, 9, 30, 0, 0, time.UTC)

	for _, f := range []Filter{
		{StartDate: "2023-01-01"},
		{EndDate: "2023-12-31"},
		{Author: "alice"},
		{Keyword: "box"},
	} {
		got := f.ApplyDefaults(now)
		assert.Equal(t, f, got)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestOrderClauses(t *testing.T) {
	assert.Equal(t, "work_date DESC, id DESC", OrderListing.clause())
	assert.Equal(t, "work_date ASC, id ASC", OrderExport.clause())
}
