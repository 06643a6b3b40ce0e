// C:\Users\incheon\Desktop\KYUNGRAK\identity\identity.go
package identity

import (
	"errors"
	"strings"
)

// ErrInvalidIdentity 는 숫자로 해석할 수 없는 중도매인 번호입니다.
var ErrInvalidIdentity = errors.New("invalid identity code")

// 정규화 폭. 시트상 번호는 3자리("002")로 기재됩니다.
const canonicalWidth = 3

// Normalize 는 "i002", "002", "2" 같은 표기를 하나의 비교 가능한 형태로
// 정규화합니다. 접두사 i/I 를 제거하고 남은 부분이 전부 숫자가 아니면
// ErrInvalidIdentity 를 반환합니다.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 0 && (s[0] == 'i' || s[0] == 'I') {
		s = s[1:]
	}
	if s == "" {
		return "", ErrInvalidIdentity
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", ErrInvalidIdentity
		}
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	for len(s) < canonicalWidth {
		s = "0" + s
	}
	return s, nil
}

// Matches 는 두 표기를 정규형으로 비교합니다. "2" == "002" == "i002".
// 시트의 번호 비교는 반드시 이 함수를 거칩니다. 원본 문자열 동등 비교는
// 표기 차이("002" vs "2")로 내역이 조용히 사라지는 버그를 만듭니다.
func Matches(a, b string) (bool, error) {
	na, err := Normalize(a)
	if err != nil {
		return false, err
	}
	nb, err := Normalize(b)
	if err != nil {
		return false, err
	}
	return na == nb, nil
}
