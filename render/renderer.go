// C:\Users\incheon\Desktop\KYUNGRAK\render\renderer.go
package render

import (
	"fmt"
	"html"
	"strings"

	"kyungrak/model"
)

// formatWon 은 금액에 천 단위 구분 기호를 넣습니다.
func formatWon(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// RenderSettlementTableHTML 은 경락 내역 목록에서 표 HTML 조각을 생성합니다.
// 내역 조회 화면과 관리자 전체 조회 화면이 공유합니다.
func RenderSettlementTableHTML(records []model.SettlementRecord, total float64, excluded int) string {
	var sb strings.Builder

	sb.WriteString(`
    <thead>
        <tr>
            <th class="col-date">경락일자</th>
            <th class="col-item">품목명</th>
            <th class="col-variety">품종</th>
            <th class="col-weight">중량</th>
            <th class="col-grade">등급</th>
            <th class="col-unitprice">단가</th>
            <th class="col-qty">수량</th>
            <th class="col-amount">금액</th>
            <th class="col-buyer">중도매인</th>
        </tr>
    </thead>
    <tbody>
`)

	if len(records) == 0 {
		sb.WriteString(`        <tr><td colspan="9" class="empty">조회된 내역이 없습니다.</td></tr>` + "\n")
	}

	for _, rec := range records {
		amount := "-"
		if rec.AmountOK {
			amount = formatWon(rec.Amount)
		} else if rec.AmountRaw != "" {
			amount = html.EscapeString(rec.AmountRaw)
		}
		sb.WriteString(fmt.Sprintf(`        <tr>
            <td>%s</td><td>%s</td><td>%s</td><td>%g</td><td>%s</td>
            <td>%s</td><td>%d</td><td class="col-amount">%s</td><td>%s</td>
        </tr>
`,
			html.EscapeString(rec.Date),
			html.EscapeString(rec.ItemName),
			html.EscapeString(rec.Variety),
			rec.Weight,
			html.EscapeString(rec.Grade),
			formatWon(rec.UnitPrice),
			rec.Quantity,
			amount,
			html.EscapeString(rec.BuyerCode),
		))
	}

	sb.WriteString("    </tbody>\n    <tfoot>\n")
	sb.WriteString(fmt.Sprintf(`        <tr><td colspan="7">합계</td><td class="col-amount">%s</td><td></td></tr>`, formatWon(total)) + "\n")
	if excluded > 0 {
		sb.WriteString(fmt.Sprintf(`        <tr><td colspan="9" class="warn">금액을 읽지 못해 합계에서 제외된 행: %d건</td></tr>`, excluded) + "\n")
	}
	sb.WriteString("    </tfoot>\n")

	return sb.String()
}
