package catalog

import "github.com/shopspring/decimal"

func won(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Default returns the compiled-in client/work-type table used when no
// CATALOG_FILE is configured. Client and work-type names are the Korean ones
// the deployment actually bills under.
func Default() *Catalog {
	return New(map[string]map[string]WorkItem{
		"로지비": {
			"라벨작업": {Content: "단상자 바코드작업", Price: won(100)},
			"포장작업": {Content: "선물세트 포장", Price: won(500)},
		},
		"비플레인": {
			"소분작업": {Content: "샘플 소분", Price: won(50)},
			"검수작업": {Content: "제품 외관 검수", Price: won(80)},
		},
		"릴라이블": {
			"소분작업": {Content: "샘플 소분", Price: won(50)},
			"검수작업": {Content: "제품 외관 검수", Price: won(80)},
			"라벨작업": {Content: "단상자 바코드작업", Price: won(100)},
			"포장작업": {Content: "선물세트 포장", Price: won(500)},
		},
		"릴라이블(대성)": {
			"소분작업": {Content: "샘플 소분", Price: won(50)},
			"검수작업": {Content: "제품 외관 검수", Price: won(80)},
			"라벨작업": {Content: "단상자 바코드작업", Price: won(100)},
			"포장작업": {Content: "선물세트 포장", Price: won(500)},
		},
		"릴라이블(랩)": {
			"소분작업": {Content: "샘플 소분", Price: won(50)},
			"검수작업": {Content: "제품 외관 검수", Price: won(80)},
			"라벨작업": {Content: "단상자 바코드작업", Price: won(100)},
			"포장작업": {Content: "아웃박스를 열여서 유관검수후에 다시 재포장해서 닫는작업", Price: won(1000)},
		},
	})
}
