// C:\Users\incheon\Desktop\KYUNGRAK\sheet\memory_test.go
package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadAll(t *testing.T) {
	m := NewMemory([]string{"아이디", "이름"},
		[]string{"002", "홍길동"},
		[]string{"003"},
	)

	snap, err := m.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"아이디", "이름"}, snap.Headers)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "홍길동", snap.Cell(0, 1))
	// 짧은 행은 헤더 폭까지 빈 칸으로 채워진다.
	assert.Equal(t, "", snap.Cell(1, 1))
	// 범위 밖 셀은 빈 문자열.
	assert.Equal(t, "", snap.Cell(9, 9))

	// 스냅샷은 복사본이어야 한다.
	snap.Rows[0][0] = "변조"
	snap2, err := m.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "002", snap2.Cell(0, 0))
}

func TestMemoryAppendAndFind(t *testing.T) {
	m := NewMemory([]string{"번호", "상태"})
	ctx := context.Background()

	require.NoError(t, m.AppendRow(ctx, []string{"a-1", "open"}))
	require.NoError(t, m.AppendRow(ctx, []string{"a-2", "open"}))

	row, err := m.FindRow(ctx, 0, " a-2 ")
	require.NoError(t, err)
	assert.Equal(t, 1, row)

	_, err = m.FindRow(ctx, 0, "a-9")
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestMemoryUpdateCell(t *testing.T) {
	m := NewMemory([]string{"번호", "상태"}, []string{"a-1", "open"})
	ctx := context.Background()

	require.NoError(t, m.UpdateCell(ctx, 0, 1, "closed"))
	snap, err := m.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "closed", snap.Cell(0, 1))

	assert.ErrorIs(t, m.UpdateCell(ctx, 5, 1, "x"), ErrRowNotFound)
}

func TestMemoryFailWith(t *testing.T) {
	m := NewMemory([]string{"번호"}, []string{"a-1"})
	ctx := context.Background()

	m.FailWith(ErrUnavailable)
	_, err := m.ReadAll(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, m.AppendRow(ctx, []string{"a-2"}), ErrUnavailable)

	m.FailWith(nil)
	_, err = m.ReadAll(ctx)
	assert.NoError(t, err)
}

func TestRateLimitedIsUnavailable(t *testing.T) {
	// 사용량 제한도 저장소 장애의 한 종류로 판정돼야 한다.
	assert.ErrorIs(t, ErrRateLimited, ErrUnavailable)
}
