// C:\Users\incheon\Desktop\KYUNGRAK\account\handler.go
package account

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kyungrak/identity"
	"kyungrak/model"
	"kyungrak/sheet"
)

// respondJSONError 는 account 패키지 공용 에러 응답 함수입니다.
func respondJSONError(w http.ResponseWriter, message string, statusCode int) {
	log.Println("Error response:", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
	})
}

// respondStorageError 는 저장소 장애를 "내역 없음"과 구분해 안내합니다.
// 처리했으면 true 를 돌려줍니다.
func respondStorageError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, sheet.ErrRateLimited) {
		respondJSONError(w, "요청이 많아 잠시 제한되었습니다. 잠시 후 다시 시도해주세요.", http.StatusTooManyRequests)
		return true
	}
	if errors.Is(err, sheet.ErrUnavailable) {
		respondJSONError(w, "저장소에 연결할 수 없습니다. 잠시 후 다시 시도해주세요.", http.StatusServiceUnavailable)
		return true
	}
	return false
}

// 호출자의 신원/역할은 매 요청 UI 셸이 헤더로 전달합니다.
// 이 서버는 세션 상태를 들고 있지 않습니다.
func callerID(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}

func isAdmin(r *http.Request) bool {
	return model.ParseRole(r.Header.Get("X-User-Role")) == model.RoleAdmin &&
		r.Header.Get("X-User-Role") != ""
}

// LoginHandler 는 아이디/비밀번호를 확인합니다.
// 아이디 오류와 비밀번호 오류는 같은 문구로 응답합니다(구분 노출 금지).
func LoginHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ID       string `json:"id"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSONError(w, "잘못된 요청입니다.", http.StatusBadRequest)
			return
		}

		acct, err := store.Authenticate(r.Context(), req.ID, req.Password)
		if err != nil {
			if respondStorageError(w, err) {
				return
			}
			if errors.Is(err, ErrNotApproved) {
				respondJSONError(w, "관리자 승인 대기중입니다.", http.StatusForbidden)
				return
			}
			// ErrNotFound / ErrWrongPassword 공통 문구
			respondJSONError(w, "아이디/비밀번호를 다시 확인하세요.", http.StatusUnauthorized)
			return
		}

		log.Printf("Login OK: %s (%s)", acct.ID, acct.Role)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"account": acct,
		})
	}
}

// SignupHandler 는 가입 신청을 받습니다. 승인 전까지 로그인할 수 없습니다.
func SignupHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ID          string `json:"id"`
			Password    string `json:"password"`
			DisplayName string `json:"displayName"`
			Role        string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSONError(w, "잘못된 요청입니다.", http.StatusBadRequest)
			return
		}
		if req.Password == "" {
			respondJSONError(w, "비밀번호를 입력해주세요.", http.StatusBadRequest)
			return
		}

		acct, err := store.RequestSignup(r.Context(), req.ID, req.Password, req.DisplayName, model.ParseRole(req.Role))
		if err != nil {
			if respondStorageError(w, err) {
				return
			}
			if errors.Is(err, identity.ErrInvalidIdentity) {
				respondJSONError(w, "아이디는 i+번호 형식입니다. (예: i002)", http.StatusBadRequest)
				return
			}
			if errors.Is(err, ErrDuplicateID) {
				respondJSONError(w, "이미 신청된 아이디입니다.", http.StatusConflict)
				return
			}
			respondJSONError(w, "가입 신청 처리 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		log.Printf("Signup requested: %s (%s)", acct.ID, acct.DisplayName)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "가입 신청이 접수되었습니다. 관리자 승인 후 이용할 수 있습니다.",
			"account": acct,
		})
	}
}

// ApproveHandler 는 대기중인 계정을 일괄 승인합니다. 관리자 전용.
func ApproveHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if !isAdmin(r) {
			respondJSONError(w, "관리자만 사용할 수 있습니다.", http.StatusForbidden)
			return
		}
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			respondJSONError(w, "승인할 아이디 목록이 비어 있습니다.", http.StatusBadRequest)
			return
		}

		succeeded, failed, err := store.Approve(r.Context(), req.IDs)
		if err != nil {
			if respondStorageError(w, err) {
				return
			}
			respondJSONError(w, "승인 처리 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		log.Printf("Approve batch: %d succeeded, %d failed", len(succeeded), len(failed))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"succeeded": succeeded,
			"failed":    failed,
		})
	}
}

// ChangePasswordHandler 는 비밀번호를 변경합니다. 본인 또는 관리자.
func ChangePasswordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ID          string `json:"id"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSONError(w, "잘못된 요청입니다.", http.StatusBadRequest)
			return
		}
		if req.NewPassword == "" {
			respondJSONError(w, "새 비밀번호를 입력해주세요.", http.StatusBadRequest)
			return
		}

		target := req.ID
		if target == "" {
			target = callerID(r)
		}
		if target == "" {
			respondJSONError(w, "대상 아이디가 없습니다.", http.StatusBadRequest)
			return
		}
		// 타인의 비밀번호는 관리자만 변경할 수 있습니다.
		if req.ID != "" && !isAdmin(r) {
			if ok, err := identity.Matches(req.ID, callerID(r)); err != nil || !ok {
				respondJSONError(w, "본인 계정만 변경할 수 있습니다.", http.StatusForbidden)
				return
			}
		}

		if err := store.ChangePassword(r.Context(), target, req.NewPassword); err != nil {
			if respondStorageError(w, err) {
				return
			}
			if errors.Is(err, ErrNotFound) {
				respondJSONError(w, "계정을 찾을 수 없습니다.", http.StatusNotFound)
				return
			}
			respondJSONError(w, "비밀번호 변경 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "변경 완료. 다음 로그인부터 새 비밀번호를 사용하세요.",
		})
	}
}
