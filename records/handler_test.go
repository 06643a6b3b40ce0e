// C:\Users\incheon\Desktop\KYUNGRAK\records\handler_test.go
package records

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyungrak/sheet"
)

func doQuery(t *testing.T, f *Filter, url, userID, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	QueryHandler(f)(rec, req)
	return rec
}

func TestQueryHandlerAccess(t *testing.T) {
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "100", "002"},
		[]string{"2024-05-02", "무", "", "20", "상", "800", "30", "200", "003"},
	)

	t.Run("code 없으면 본인 내역", func(t *testing.T) {
		rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31", "i002", "broker")
		require.Equal(t, http.StatusOK, rec.Code)
		var res QueryResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		require.Len(t, res.Rows, 1)
		assert.Equal(t, "002", res.Rows[0].BuyerCode)
	})

	t.Run("타인 번호 조회는 거부", func(t *testing.T) {
		rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31&code=003", "002", "broker")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("본인 번호는 표기가 달라도 허용", func(t *testing.T) {
		rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31&code=2", "i002", "broker")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ALL 은 관리자 전용", func(t *testing.T) {
		rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31&code=ALL", "002", "broker")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31&code=ALL", "001", "admin")
		require.Equal(t, http.StatusOK, rec.Code)
		var res QueryResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Len(t, res.Rows, 2)
	})

	t.Run("관리자는 타인 번호도 조회", func(t *testing.T) {
		rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31&code=003", "001", "admin")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("날짜 형식 오류는 400", func(t *testing.T) {
		rec := doQuery(t, f, "/api/records?from=01-05-2024", "002", "broker")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQueryHandlerStorageFailure(t *testing.T) {
	f, mem := newTestFilter(
		[]string{"2024-05-01", "배추", "", "8", "특", "3500", "10", "100", "002"},
	)

	mem.FailWith(sheet.ErrUnavailable)
	rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31", "002", "broker")
	// 장애를 빈 결과(200)로 속이면 안 된다.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	mem.FailWith(sheet.ErrRateLimited)
	rec = doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31", "002", "broker")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestQueryHandlerHTMLFormat(t *testing.T) {
	f, _ := newTestFilter(
		[]string{"2024-05-01", "배추", "봄동", "8", "특", "3500", "10", "35000", "002"},
	)

	rec := doQuery(t, f, "/api/records?from=2024-05-01&to=2024-05-31&format=html", "002", "broker")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "배추")
	assert.Contains(t, body, "35,000")
}
