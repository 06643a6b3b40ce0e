// C:\Users\incheon\Desktop\KYUNGRAK\parsers\settlement_csv_parser.go
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"kyungrak/records"
	"kyungrak/sheet"
)

// ParseSettlementCSV 는 공판장 경락 내역 CSV 를 해석해 시트에 추가할 수 있는
// 스냅샷을 돌려줍니다. 헤더는 records.Fields 의 후보 목록으로 검증만 하고,
// 셀 값은 문자열 그대로 보존합니다(숫자/날짜 해석은 조회 경계의 일입니다).
// eucKR 이 참이면 EUC-KR 로 디코딩합니다.
func ParseSettlementCSV(r io.Reader, eucKR bool) (*sheet.Snapshot, error) {
	if eucKR {
		r = NewEUCKRReader(r)
	}
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV 파일이 비어 있습니다")
	}
	if err != nil {
		return nil, fmt.Errorf("CSV 헤더 읽기 실패: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	// 필수 열이 전부 있는지만 여기서 확인합니다. 열 이름 표류는
	// records.Fields 가 흡수합니다.
	if _, err := records.Fields.Columns(header); err != nil {
		return nil, err
	}

	snap := &sheet.Snapshot{Headers: header}
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: 경락 내역 CSV %d행 읽기 오류 (건너뜀): %v", line, err)
			continue
		}

		empty := true
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
			if rec[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		snap.Rows = append(snap.Rows, rec)
	}

	return snap, nil
}
