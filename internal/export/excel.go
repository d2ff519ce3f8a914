// Package export renders a filtered record set into the settlement
// spreadsheet the back office downloads each month.
package export

import (
	"time"
	"unicode/utf8"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/model"

	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet the export writes.
const SheetName = "정산데이터"

const (
	headerFillColor = "ADD8E6"
	numberFormat    = "#,##0"
)

type column struct {
	header  string
	numeric bool
	value   func(r *model.Record) interface{}
}

// columns is the fixed export order with the localized header names.
// The attachment reference is deliberately not exported.
var columns = []column{
	{"고유번호", false, func(r *model.Record) interface{} { return r.ID.String() }},
	{"작업일자", false, func(r *model.Record) interface{} { return r.WorkDate }},
	{"거래처", false, func(r *model.Record) interface{} { return r.Client }},
	{"작성자", false, func(r *model.Record) interface{} { return r.Author }},
	{"업체상품코드", false, func(r *model.Record) interface{} { return r.ProductCode }},
	{"작업 구분", false, func(r *model.Record) interface{} { return r.WorkType }},
	{"내용", false, func(r *model.Record) interface{} { return r.Content }},
	{"상품명", false, func(r *model.Record) interface{} { return r.ProductName }},
	{"작업수량", true, func(r *model.Record) interface{} { return r.Quantity }},
	{"박스수량", true, func(r *model.Record) interface{} {
		if r.BoxQuantity == nil {
			return nil
		}
		return *r.BoxQuantity
	}},
	{"금액(단가)", true, func(r *model.Record) interface{} { return r.UnitPrice.InexactFloat64() }},
	{"합계", true, func(r *model.Record) interface{} { return r.TotalAmount.InexactFloat64() }},
	{"주문자", false, func(r *model.Record) interface{} { return r.Remarks }},
	{"송장번호", false, func(r *model.Record) interface{} { return r.TrackingNumber }},
	{"확정여부", false, func(r *model.Record) interface{} {
		if r.Confirmed {
			return "확정"
		}
		return "미확정"
	}},
}

type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// Render produces the xlsx bytes for an already-filtered, already-ordered
// record set. A zero-row set still yields a sheet with the styled header.
func (e *ExcelExporter) Render(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
	}
	numFmt := numberFormat
	numStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, col.header); err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
		}
		widths[i] = utf8.RuneCountInString(col.header)
	}

	for row := range records {
		for i, col := range columns {
			v := col.value(&records[row])
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
			}
			rendered, _ := f.GetCellValue(SheetName, cell)
			if n := utf8.RuneCountInString(rendered); n > widths[i] {
				widths[i] = n
			}
		}
	}

	firstHeader, _ := excelize.CoordinatesToCellName(1, 1)
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(SheetName, firstHeader, lastHeader, headerStyle); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
	}

	if len(records) > 0 {
		for i, col := range columns {
			if !col.numeric {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(i+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(i+1, len(records)+1)
			if err := f.SetCellStyle(SheetName, top, bottom, numStyle); err != nil {
				return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
			}
		}
	}

	for i := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, name, name, float64(widths[i]+2)); err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to build spreadsheet")
	}
	return buf.Bytes(), nil
}

// Filename embeds the year-month of generation time.
func Filename(now time.Time) string {
	return now.Format("2006-01") + " 정산노트.xlsx"
}
