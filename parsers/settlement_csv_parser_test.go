// C:\Users\incheon\Desktop\KYUNGRAK\parsers\settlement_csv_parser_test.go
package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"kyungrak/schema"
)

const sampleCSV = "경락일자,품목명,품종,중량,등급,단가,수량,금액,중도매인번호\n" +
	"2024-05-01,배추,봄동,8,특,3500,10,\"35,000\",002\n" +
	"2024-05-02,무,,20,상,800,30,24000,003\n"

func TestParseSettlementCSV(t *testing.T) {
	snap, err := ParseSettlementCSV(strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	assert.Equal(t, "경락일자", snap.Headers[0])
	require.Len(t, snap.Rows, 2)
	// 셀 값은 해석하지 않고 문자열 그대로 보존한다.
	assert.Equal(t, "35,000", snap.Cell(0, 7))
	assert.Equal(t, "002", snap.Cell(0, 8))
}

func TestParseSettlementCSVWithBOM(t *testing.T) {
	snap, err := ParseSettlementCSV(strings.NewReader("\uFEFF"+sampleCSV), false)
	require.NoError(t, err)
	assert.Equal(t, "경락일자", snap.Headers[0])
	require.Len(t, snap.Rows, 2)
}

func TestParseSettlementCSVEUCKR(t *testing.T) {
	encoded, _, err := transform.String(korean.EUCKR.NewEncoder(), sampleCSV)
	require.NoError(t, err)

	snap, err := ParseSettlementCSV(strings.NewReader(encoded), true)
	require.NoError(t, err)
	assert.Equal(t, "경락일자", snap.Headers[0])
	assert.Equal(t, "배추", snap.Cell(0, 1))
}

func TestParseSettlementCSVHeaderDrift(t *testing.T) {
	csv := "일자,품목,종류,무게,등급,경락단가,수량,낙찰금액,중도매인\n" +
		"2024/05/01,배추,봄동,8,특,3500,10,35000,i002\n"

	snap, err := ParseSettlementCSV(strings.NewReader(csv), false)
	require.NoError(t, err)
	assert.Equal(t, "일자", snap.Headers[0])
	require.Len(t, snap.Rows, 1)
}

func TestParseSettlementCSVMissingColumn(t *testing.T) {
	csv := "경락일자,품목명\n2024-05-01,배추\n"
	_, err := ParseSettlementCSV(strings.NewReader(csv), false)
	assert.ErrorIs(t, err, schema.ErrNoColumn)
}

func TestParseSettlementCSVSkipsEmptyAndKeepsRagged(t *testing.T) {
	csv := sampleCSV +
		",,,,,,,,\n" + // 전부 빈 칸인 행
		"2024-05-04,양파,,15\n" // 열이 모자란 행

	snap, err := ParseSettlementCSV(strings.NewReader(csv), false)
	require.NoError(t, err)
	// 빈 행은 버리고, 열이 모자란 행은 그대로 살린다.
	require.Len(t, snap.Rows, 3)
	last := snap.Rows[len(snap.Rows)-1]
	assert.Equal(t, "양파", last[1])
	assert.Len(t, last, 4)
}

func TestParseSettlementCSVEmpty(t *testing.T) {
	_, err := ParseSettlementCSV(strings.NewReader(""), false)
	assert.Error(t, err)
}
