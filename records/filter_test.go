// C:\Users\incheon\Desktop\KYUNGRAK\records\filter_test.go
package records

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyungrak/identity"
	"kyungrak/sheet"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func newTestFilter(rows ...[]string) (*Filter, *sheet.Memory) {
	mem := sheet.NewMemory(DefaultHeaders, rows...)
	return NewFilter(mem), mem
}

func TestQueryByBuyer(t *testing.T) {
	ctx := context.Background()
	// 같은 중도매인이 "2" 와 "002" 두 표기로 흩어져 있는 시트.
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "봄동", "8", "특", "3500", "10", "35,000", "2"},
		[]string{"2024-05-03", "무", "", "20", "상", "800", "30", "24000", "002"},
		[]string{"2024-05-02", "배추", "봄동", "8", "특", "3600", "5", "18000", "003"},
	)

	res, err := f.Query(ctx, day("2024-05-01"), day("2024-05-31"), "i002")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2, "표기가 달라도 같은 번호의 내역은 전부 나와야 한다")

	// 날짜 내림차순.
	assert.Equal(t, "2024-05-03", res.Rows[0].Date)
	assert.Equal(t, "2024-05-01", res.Rows[1].Date)
	assert.Equal(t, "002", res.Rows[0].BuyerCode)
	assert.Equal(t, "002", res.Rows[1].BuyerCode)

	assert.Equal(t, 59000.0, res.Total)
	assert.Equal(t, 0, res.ExcludedFromTotal)
	assert.Equal(t, 0, res.SkippedRows)
}

func TestQueryDateBoundsInclusive(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "100", "002"},
		[]string{"2024-05-02", "배추", "", "8", "특", "3500", "10", "200", "002"},
		[]string{"2024-05-03", "배추", "", "8", "특", "3500", "10", "400", "002"},
	)

	res, err := f.Query(ctx, day("2024-05-01"), day("2024-05-02"), "002")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 300.0, res.Total)

	// 양끝 하루짜리 기간도 포함이다.
	res, err = f.Query(ctx, day("2024-05-03"), day("2024-05-03"), "002")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
}

func TestQueryUnparsableAmount(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "35000", "002"},
		[]string{"2024-05-02", "무", "", "20", "상", "800", "30", "미정", "002"},
	)

	res, err := f.Query(ctx, day("2024-05-01"), day("2024-05-31"), "002")
	require.NoError(t, err)
	// 금액을 못 읽은 행도 화면에는 남긴다. 조용한 유실 금지.
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 35000.0, res.Total)
	assert.Equal(t, 1, res.ExcludedFromTotal)

	bad := res.Rows[0]
	assert.False(t, bad.AmountOK)
	assert.Equal(t, "미정", bad.AmountRaw)
	good := res.Rows[1]
	assert.True(t, good.AmountOK)
	assert.Equal(t, 35000.0, good.Amount)
}

func TestQueryUnparsableDateSkipped(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "100", "002"},
		[]string{"날짜없음", "무", "", "20", "상", "800", "30", "200", "002"},
	)

	res, err := f.Query(ctx, day("2024-05-01"), day("2024-05-31"), "002")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, 1, res.SkippedRows)
}

func TestQueryAll(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "100", "002"},
		[]string{"2024-05-02", "무", "", "20", "상", "800", "30", "200", "003"},
	)

	res, err := f.Query(ctx, day("2024-05-01"), day("2024-05-31"), All)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
	assert.Equal(t, 300.0, res.Total)
}

func TestQueryInvalidID(t *testing.T) {
	f, _ := newTestFilter()
	_, err := f.Query(context.Background(), day("2024-05-01"), day("2024-05-31"), "abc")
	assert.ErrorIs(t, err, identity.ErrInvalidIdentity)
}

func TestQueryStorageFailure(t *testing.T) {
	f, mem := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "100", "002"},
	)
	mem.FailWith(sheet.ErrRateLimited)

	_, err := f.Query(context.Background(), day("2024-05-01"), day("2024-05-31"), "002")
	assert.ErrorIs(t, err, sheet.ErrRateLimited)
}

func TestQueryHeaderDrift(t *testing.T) {
	// 구형 내보내기 파일의 헤더 표기.
	mem := sheet.NewMemory(
		[]string{"일자", "품목", "종류", "무게", "등급", "경락단가", "수량", "낙찰금액", "중도매인"},
		[]string{"2024/05/01", "배추", "봄동", "8", "특", "3500", "10", "35000", "i002"},
	)
	f := NewFilter(mem)

	res, err := f.Query(context.Background(), day("2024-05-01"), day("2024-05-31"), "2")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "2024-05-01", res.Rows[0].Date)
	assert.Equal(t, "배추", res.Rows[0].ItemName)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-05-01", "2024/05/01", "2024.05.01", "20240501"} {
		d, ok := ParseDate(s)
		require.True(t, ok, "입력 %q", s)
		assert.Equal(t, "2024-05-01", d.Format("2006-01-02"))
	}
	_, ok := ParseDate("01-05-2024")
	assert.False(t, ok)
}
