// C:\Users\incheon\Desktop\KYUNGRAK\records\filter.go
package records

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"kyungrak/identity"
	"kyungrak/model"
	"kyungrak/schema"
	"kyungrak/sheet"
)

// SheetName 은 경락 내역 시트의 논리 이름입니다.
const SheetName = "records"

// All 은 전체 중도매인 조회(관리자 전용)를 뜻하는 식별자입니다.
const All = "ALL"

// DefaultHeaders 는 새 내역 시트를 만들 때의 기본 헤더입니다.
var DefaultHeaders = []string{"경락일자", "품목명", "품종", "중량", "등급", "단가", "수량", "금액", "중도매인번호"}

// Fields 는 공판장 시트 버전별 헤더 표류를 흡수하는 후보 목록입니다.
// 새 표기가 나타나면 여기에만 추가합니다.
var Fields = schema.FieldMap{
	"date":      {"경락일자", "일자", "날짜"},
	"item":      {"품목명", "품목", "품명"},
	"variety":   {"품종", "종류"},
	"weight":    {"중량", "무게"},
	"grade":     {"등급"},
	"unitPrice": {"단가", "경락단가"},
	"quantity":  {"수량"},
	"amount":    {"금액", "낙찰금액", "경락금액"},
	"buyer":     {"중도매인번호", "중도매인", "구매자코드"},
}

// QueryResult 는 조회 결과입니다. 금액을 숫자로 읽지 못한 행은 Rows 에는
// 남기되 Total 에서 빼고 ExcludedFromTotal 로 셉니다(조용한 유실 금지).
// 날짜를 읽지 못해 기간 판정이 불가능한 행은 SkippedRows 로 셉니다.
type QueryResult struct {
	Rows              []model.SettlementRecord `json:"rows"`
	Total             float64                  `json:"total"`
	ExcludedFromTotal int                      `json:"excludedFromTotal"`
	SkippedRows       int                      `json:"skippedRows"`
}

// Filter 는 경락 내역 시트에 대한 기간/중도매인 조회를 담당합니다.
type Filter struct {
	tbl sheet.Table
}

func NewFilter(tbl sheet.Table) *Filter {
	return &Filter{tbl: tbl}
}

// 공판장 내보내기 파일마다 날짜 표기가 다릅니다.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006.01.02", "20060102"}

// ParseDate 는 시트의 날짜 표기를 해석합니다.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount 는 "1,234,000" 같은 표기를 숫자로 해석합니다.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloatCell(s string) float64 {
	v, _ := parseAmount(s)
	return v
}

func parseIntCell(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// Query 는 기간(양끝 포함)과 중도매인 번호로 내역을 조회합니다.
// id 는 정규화 전 표기도 허용하며, All("ALL") 이면 전체를 돌려줍니다
// (전체 조회의 권한 검사는 핸들러의 몫입니다). 결과는 날짜 내림차순입니다.
func (f *Filter) Query(ctx context.Context, from, to time.Time, id string) (*QueryResult, error) {
	canonical := ""
	if id != All {
		var err error
		canonical, err = identity.Normalize(id)
		if err != nil {
			return nil, err
		}
	}

	snap, err := f.tbl.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	cols, err := Fields.Columns(snap.Headers)
	if err != nil {
		return nil, fmt.Errorf("records sheet: %w", err)
	}

	res := &QueryResult{}
	type dated struct {
		rec model.SettlementRecord
		t   time.Time
	}
	var out []dated

	for i := range snap.Rows {
		day, ok := ParseDate(snap.Cell(i, cols["date"]))
		if !ok {
			res.SkippedRows++
			continue
		}
		if day.Before(from) || day.After(to) {
			continue
		}

		if canonical != "" {
			match, merr := identity.Matches(snap.Cell(i, cols["buyer"]), canonical)
			if merr != nil || !match {
				continue
			}
		}

		buyer, berr := identity.Normalize(snap.Cell(i, cols["buyer"]))
		if berr != nil {
			buyer = strings.TrimSpace(snap.Cell(i, cols["buyer"]))
		}

		rec := model.SettlementRecord{
			Date:      day.Format("2006-01-02"),
			ItemName:  strings.TrimSpace(snap.Cell(i, cols["item"])),
			Variety:   strings.TrimSpace(snap.Cell(i, cols["variety"])),
			Weight:    parseFloatCell(snap.Cell(i, cols["weight"])),
			Grade:     strings.TrimSpace(snap.Cell(i, cols["grade"])),
			UnitPrice: parseFloatCell(snap.Cell(i, cols["unitPrice"])),
			Quantity:  parseIntCell(snap.Cell(i, cols["quantity"])),
			BuyerCode: buyer,
		}

		amount, ok := parseAmount(snap.Cell(i, cols["amount"]))
		if ok {
			rec.Amount = amount
			rec.AmountOK = true
			res.Total += amount
		} else {
			rec.AmountRaw = strings.TrimSpace(snap.Cell(i, cols["amount"]))
			res.ExcludedFromTotal++
		}

		out = append(out, dated{rec: rec, t: day})
	}

	// 최신 내역부터.
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].t.After(out[b].t)
	})
	for _, d := range out {
		res.Rows = append(res.Rows, d.rec)
	}
	return res, nil
}
