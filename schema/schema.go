// C:\Users\incheon\Desktop\KYUNGRAK\schema\schema.go
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoColumn 은 후보 헤더명을 전부 시도해도 열을 찾지 못한 경우입니다.
var ErrNoColumn = errors.New("no matching column")

// Resolve 는 실제 시트 헤더에서 후보명 중 첫 번째로 존재하는 열을 찾습니다.
// 시트 버전에 따라 헤더명이 달라져 온 문제("경락일자" / "일자" / "날짜")를
// 호출부마다 폴백 체인을 흩뿌리지 않고 여기 한 곳에서 처리합니다.
// 공백 제거는 호출자가 아니라 이 함수의 책임입니다.
func Resolve(headers []string, candidates []string) (int, string, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	for _, c := range candidates {
		if i, ok := index[strings.TrimSpace(c)]; ok {
			return i, headers[i], nil
		}
	}
	return -1, "", fmt.Errorf("%w (candidates: %s)", ErrNoColumn, strings.Join(candidates, "/"))
}

// FieldMap 은 논리 필드명 -> 후보 헤더명 목록입니다.
// 각 시트마다 한 번만 정의하고, 매 스냅샷의 헤더에 대해 Columns로 해석합니다.
type FieldMap map[string][]string

// Columns 는 모든 필드의 실제 열 인덱스를 한 번에 해석합니다.
// 하나라도 없으면 ErrNoColumn 을 필드명과 함께 돌려줍니다.
func (fm FieldMap) Columns(headers []string) (map[string]int, error) {
	cols := make(map[string]int, len(fm))
	for field, candidates := range fm {
		i, _, err := Resolve(headers, candidates)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		cols[field] = i
	}
	return cols, nil
}
