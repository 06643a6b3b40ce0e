// C:\Users\incheon\Desktop\KYUNGRAK\loader\loader_test.go
package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyungrak/records"
)

func TestRemapRow(t *testing.T) {
	// CSV 쪽 헤더('일자', '낙찰금액')와 시트 쪽 헤더 배치가 다른 경우.
	sourceCols, err := records.Fields.Columns(
		[]string{"중도매인", "일자", "품목", "종류", "무게", "등급", "경락단가", "수량", "낙찰금액"})
	require.NoError(t, err)
	targetCols, err := records.Fields.Columns(records.DefaultHeaders)
	require.NoError(t, err)

	row := []string{"i002", "2024-05-01", "배추", "봄동", "8", "특", "3500", "10", "35000"}
	values := remapRow(row, sourceCols, targetCols, len(records.DefaultHeaders))

	assert.Equal(t, "2024-05-01", values[targetCols["date"]])
	assert.Equal(t, "배추", values[targetCols["item"]])
	assert.Equal(t, "35000", values[targetCols["amount"]])
	assert.Equal(t, "i002", values[targetCols["buyer"]])
}

func TestRemapRowShortRow(t *testing.T) {
	sourceCols, err := records.Fields.Columns(records.DefaultHeaders)
	require.NoError(t, err)

	// 열이 모자란 행은 있는 만큼만 옮기고 나머지는 빈 칸이다.
	row := []string{"2024-05-01", "배추"}
	values := remapRow(row, sourceCols, sourceCols, len(records.DefaultHeaders))
	assert.Equal(t, "2024-05-01", values[sourceCols["date"]])
	assert.Equal(t, "배추", values[sourceCols["item"]])
	assert.Equal(t, "", values[sourceCols["amount"]])
}
