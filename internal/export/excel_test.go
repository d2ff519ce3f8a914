package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/jinkisoma/web-manager/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecord(author string, confirmed bool) model.Record {
	box := 3
	rec := model.Record{
		ID:             uuid.New(),
		WorkDate:       "2024-05-01",
		Client:         "로지비",
		Author:         author,
		ProductCode:    "P-01",
		WorkType:       "라벨작업",
		Content:        "단상자 바코드작업",
		ProductName:    "선물세트",
		Quantity:       1000,
		BoxQuantity:    &box,
		UnitPrice:      decimal.NewFromInt(100),
		Remarks:        "홍길동",
		TrackingNumber: "TRK123",
		Confirmed:      confirmed,
	}
	rec.RecalculateTotal()
	return rec
}

func TestRenderHeadersAndRows(t *testing.T) {
	e := NewExcelExporter()

	data, err := e.Render([]model.Record{
		sampleRecord("alice", true),
		sampleRecord("bob", false),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"고유번호", "작업일자", "거래처", "작성자", "업체상품코드", "작업 구분", "내용",
		"상품명", "작업수량", "박스수량", "금액(단가)", "합계", "주문자", "송장번호", "확정여부",
	}, rows[0])

	// confirmed renders as a two-state label, not a boolean
	assert.Equal(t, "확정", rows[1][14])
	assert.Equal(t, "미확정", rows[2][14])

	// numeric columns carry thousands separators and no forced decimals
	qty, err := f.GetCellValue(SheetName, "I2")
	require.NoError(t, err)
	assert.Equal(t, "1,000", qty)
	total, err := f.GetCellValue(SheetName, "L2")
	require.NoError(t, err)
	assert.Equal(t, "100,000", total)
}

func TestRenderEmptySetStillHasHeader(t *testing.T) {
	e := NewExcelExporter()

	data, err := e.Render(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "고유번호", rows[0][0])
}

func TestRenderOmitsAbsentBoxQuantity(t *testing.T) {
	e := NewExcelExporter()
	rec := sampleRecord("alice", false)
	rec.BoxQuantity = nil

	data, err := e.Render([]model.Record{rec})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SheetName, "J2")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestColumnWidthsGrowWithContent(t *testing.T) {
	e := NewExcelExporter()
	rec := sampleRecord("alice", false)
	rec.Content = "아웃박스를 열여서 유관검수후에 다시 재포장해서 닫는작업"

	data, err := e.Render([]model.Record{rec})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// content column (G) must be wider than its two-character header alone
	width, err := f.GetColWidth(SheetName, "G")
	require.NoError(t, err)
	assert.Greater(t, width, 10.0)
}

func TestFilenameEmbedsYearMonth(t *testing.T) {
	now := time.Date(2024, time.May, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05 정산노트.xlsx", Filename(now))
}
