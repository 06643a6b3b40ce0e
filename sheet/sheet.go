// C:\Users\incheon\Desktop\KYUNGRAK\sheet\sheet.go
package sheet

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable 은 저장소 자체에 닿지 못한 경우입니다(타임아웃 포함).
	// "일치하는 행 0건"과 절대 혼동하지 않습니다. UI는 이 둘을 다르게 안내해야 합니다.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrRateLimited 는 저장소의 사용량 제한 응답입니다. ErrUnavailable 의
	// 하위 유형이므로 errors.Is(err, ErrUnavailable) 도 참입니다.
	ErrRateLimited = fmt.Errorf("rate limited: %w", ErrUnavailable)

	// ErrRowNotFound 는 FindRow 에서 키와 일치하는 행이 없는 경우입니다.
	ErrRowNotFound = errors.New("row not found")
)

// Snapshot 은 시트 전체를 문자열 그대로 읽은 결과입니다.
// Rows[0] 이 첫 데이터 행이며 헤더 행은 포함하지 않습니다.
type Snapshot struct {
	Headers []string
	Rows    [][]string
}

// Cell 은 범위를 벗어나도 안전하게 셀 값을 돌려줍니다.
func (s *Snapshot) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Table 은 표 형태 저장소 1장에 대한 최소 계약입니다. 모든 값은 문자열로
// 오가며 숫자/날짜 해석은 이 계층의 일이 아닙니다. 행/열 인덱스는 0부터,
// 행 인덱스는 헤더를 제외한 데이터 행 기준입니다.
type Table interface {
	ReadAll(ctx context.Context) (*Snapshot, error)
	AppendRow(ctx context.Context, values []string) error
	UpdateCell(ctx context.Context, row, col int, value string) error
	FindRow(ctx context.Context, col int, key string) (int, error)
}
