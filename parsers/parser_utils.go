// C:\Users\incheon\Desktop\KYUNGRAK\parsers\parser_utils.go
package parsers

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// SkipBOM 은 UTF-8 BOM 을 건너뜁니다.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// NewEUCKRReader 는 EUC-KR(CP949) 파일을 UTF-8 로 읽습니다.
// 공판장 정산 프로그램의 내보내기 파일이 이 인코딩입니다.
func NewEUCKRReader(r io.Reader) io.Reader {
	return transform.NewReader(r, korean.EUCKR.NewDecoder())
}
