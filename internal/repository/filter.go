package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Filter is the shared predicate behind the listing view and the excel
// export. Both build their queries from the same scope, so identical
// parameters always select identical record sets.
type Filter struct {
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	Author    string // exact match
	Keyword   string // case-insensitive substring
}

// keywordColumns are the fields a keyword is matched against (OR within,
// AND against the date/author constraints).
var keywordColumns = []string{"client", "author", "product_name", "content", "tracking_number"}

func (f Filter) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" && f.Author == "" && f.Keyword == ""
}

// ApplyDefaults substitutes the current calendar month as the date range when
// no constraint at all was given (the first-load default).
func (f Filter) ApplyDefaults(now time.Time) Filter {
	if !f.IsZero() {
		return f
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	f.StartDate = first.Format("2006-01-02")
	f.EndDate = last.Format("2006-01-02")
	return f
}

// scope applies the filter to a query. Work dates are stored as YYYY-MM-DD
// strings, so the inclusive range is plain lexicographic comparison on every
// backend.
func (f Filter) scope(db *gorm.DB) *gorm.DB {
	if f.StartDate != "" {
		db = db.Where("work_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		db = db.Where("work_date <= ?", f.EndDate)
	}
	if f.Author != "" {
		db = db.Where("author = ?", f.Author)
	}
	if f.Keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Keyword)) + "%"
		conds := make([]string, len(keywordColumns))
		args := make([]interface{}, len(keywordColumns))
		for i, col := range keywordColumns {
			conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}
	return db
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Order picks the sort direction over a filtered set. Changing the order
// never changes which records are included.
type Order int

const (
	// OrderListing is most-recent-first, for the interactive list.
	OrderListing Order = iota
	// OrderExport is oldest-first, for the spreadsheet.
	OrderExport
)

func (o Order) clause() string {
	if o == OrderExport {
		return "work_date ASC, id ASC"
	}
	return "work_date DESC, id DESC"
}
