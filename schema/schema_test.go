// C:\Users\incheon\Desktop\KYUNGRAK\schema\schema_test.go
package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	headers := []string{"경락일자", "품목명", "금액"}

	t.Run("첫 후보가 있으면 그 열", func(t *testing.T) {
		i, name, err := Resolve(headers, []string{"경락일자", "일자", "날짜"})
		require.NoError(t, err)
		assert.Equal(t, 0, i)
		assert.Equal(t, "경락일자", name)
	})

	t.Run("첫 후보가 없으면 다음 후보로", func(t *testing.T) {
		i, name, err := Resolve([]string{"일자", "품목명"}, []string{"경락일자", "일자"})
		require.NoError(t, err)
		assert.Equal(t, 0, i)
		assert.Equal(t, "일자", name)
	})

	t.Run("양쪽 공백은 무시", func(t *testing.T) {
		i, _, err := Resolve([]string{" 금액 ", "수량"}, []string{"금액"})
		require.NoError(t, err)
		assert.Equal(t, 0, i)

		i, _, err = Resolve(headers, []string{" 금액 "})
		require.NoError(t, err)
		assert.Equal(t, 2, i)
	})

	t.Run("후보 전부 실패하면 ErrNoColumn", func(t *testing.T) {
		_, _, err := Resolve(headers, []string{"중량", "무게"})
		assert.ErrorIs(t, err, ErrNoColumn)
	})

	t.Run("중복 헤더는 앞선 열이 이김", func(t *testing.T) {
		i, _, err := Resolve([]string{"금액", "품목명", "금액"}, []string{"금액"})
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	})
}

func TestFieldMapColumns(t *testing.T) {
	fm := FieldMap{
		"date":   {"경락일자", "일자"},
		"amount": {"금액", "낙찰금액"},
	}

	cols, err := fm.Columns([]string{"일자", "품목명", "낙찰금액"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"date": 0, "amount": 2}, cols)

	_, err = fm.Columns([]string{"일자", "품목명"})
	require.ErrorIs(t, err, ErrNoColumn)
	assert.Contains(t, err.Error(), "amount")
}
