// C:\Users\incheon\Desktop\KYUNGRAK\records\handler.go
package records

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"kyungrak/identity"
	"kyungrak/model"
	"kyungrak/render"
	"kyungrak/sheet"
)

// respondJSONError 는 records 패키지 공용 에러 응답 함수입니다.
func respondJSONError(w http.ResponseWriter, message string, statusCode int) {
	log.Println("Error response:", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
		"rows":    []interface{}{},
	})
}

func isAdmin(r *http.Request) bool {
	return r.Header.Get("X-User-Role") != "" &&
		model.ParseRole(r.Header.Get("X-User-Role")) == model.RoleAdmin
}

// QueryHandler 는 기간/중도매인 조회 API 입니다.
// code=ALL 은 관리자 전용이며, code 가 없으면 호출자 본인 내역을 돌려줍니다.
// format=html 이면 표 HTML 조각을 돌려줍니다.
func QueryHandler(filter *Filter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query()
		to := time.Now()
		from := to.AddDate(0, -1, 0)
		if s := q.Get("from"); s != "" {
			t, ok := ParseDate(s)
			if !ok {
				respondJSONError(w, "조회 시작일 형식이 잘못되었습니다.", http.StatusBadRequest)
				return
			}
			from = t
		}
		if s := q.Get("to"); s != "" {
			t, ok := ParseDate(s)
			if !ok {
				respondJSONError(w, "조회 종료일 형식이 잘못되었습니다.", http.StatusBadRequest)
				return
			}
			to = t
		}

		code := q.Get("code")
		if code == "" {
			code = r.Header.Get("X-User-Id")
		}
		if code == All {
			if !isAdmin(r) {
				respondJSONError(w, "전체 조회는 관리자만 사용할 수 있습니다.", http.StatusForbidden)
				return
			}
		} else if !isAdmin(r) {
			// 중도매인은 본인 내역만 조회할 수 있습니다.
			if ok, err := identity.Matches(code, r.Header.Get("X-User-Id")); err != nil || !ok {
				respondJSONError(w, "본인 내역만 조회할 수 있습니다.", http.StatusForbidden)
				return
			}
		}

		log.Printf("Records query: from=%s to=%s code=%s",
			from.Format("2006-01-02"), to.Format("2006-01-02"), code)

		result, err := filter.Query(r.Context(), from, to, code)
		if err != nil {
			if errors.Is(err, sheet.ErrRateLimited) {
				respondJSONError(w, "요청이 많아 잠시 제한되었습니다. 잠시 후 다시 시도해주세요.", http.StatusTooManyRequests)
				return
			}
			if errors.Is(err, sheet.ErrUnavailable) {
				respondJSONError(w, "저장소에 연결할 수 없습니다. 잠시 후 다시 시도해주세요.", http.StatusServiceUnavailable)
				return
			}
			if errors.Is(err, identity.ErrInvalidIdentity) {
				respondJSONError(w, "중도매인 번호 형식이 잘못되었습니다.", http.StatusBadRequest)
				return
			}
			log.Printf("Error querying records: %v", err)
			respondJSONError(w, "내역 조회 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		if q.Get("format") == "html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(render.RenderSettlementTableHTML(result.Rows, result.Total, result.ExcludedFromTotal)))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
