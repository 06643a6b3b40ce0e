// C:\Users\incheon\Desktop\KYUNGRAK\offers\handler.go
package offers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kyungrak/model"
	"kyungrak/sheet"
)

// respondJSONError 는 offers 패키지 공용 에러 응답 함수입니다.
func respondJSONError(w http.ResponseWriter, message string, statusCode int) {
	log.Println("Error response:", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
	})
}

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

func isAdmin(r *http.Request) bool {
	return r.Header.Get("X-User-Role") != "" &&
		model.ParseRole(r.Header.Get("X-User-Role")) == model.RoleAdmin
}

// ListHandler 는 주문판 목록을 돌려줍니다. 기본은 open 게시물만,
// all=1 이면 관리자에 한해 마감 포함 전체를 돌려줍니다.
func ListHandler(board *Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		var (
			list []model.Offer
			err  error
		)
		if r.URL.Query().Get("all") == "1" {
			if !isAdmin(r) {
				respondJSONError(w, "관리자만 사용할 수 있습니다.", http.StatusForbidden)
				return
			}
			list, err = board.ListAll(r.Context())
		} else {
			list, err = board.ListOpen(r.Context())
		}
		if err != nil {
			if respondStorageError(w, err) {
				return
			}
			log.Printf("Error listing offers: %v", err)
			respondJSONError(w, "주문판 조회 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"offers": list,
		})
	}
}

// PostHandler 는 게시물 1건을 등록합니다. 관리자 전용.
func PostHandler(board *Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if !isAdmin(r) {
			respondJSONError(w, "관리자만 등록할 수 있습니다.", http.StatusForbidden)
			return
		}
		var req struct {
			ItemName  string  `json:"itemName"`
			Spec      string  `json:"spec"`
			UnitPrice float64 `json:"unitPrice"`
			Quantity  int     `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSONError(w, "잘못된 요청입니다.", http.StatusBadRequest)
			return
		}
		if req.ItemName == "" {
			respondJSONError(w, "품목명을 입력해주세요.", http.StatusBadRequest)
			return
		}

		id, err := board.Post(r.Context(), model.Offer{
			ItemName:  req.ItemName,
			Spec:      req.Spec,
			UnitPrice: req.UnitPrice,
			Quantity:  req.Quantity,
		})
		if err != nil {
			if respondStorageError(w, err) {
				return
			}
			log.Printf("Error posting offer: %v", err)
			respondJSONError(w, "게시물 등록 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		log.Printf("Offer posted: %s (%s)", id, req.ItemName)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": id,
		})
	}
}

// CloseHandler 는 게시물을 마감합니다. 관리자 전용. 멱등입니다.
func CloseHandler(board *Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if !isAdmin(r) {
			respondJSONError(w, "관리자만 마감할 수 있습니다.", http.StatusForbidden)
			return
		}
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
			respondJSONError(w, "게시물 번호가 없습니다.", http.StatusBadRequest)
			return
		}

		if err := board.Close(r.Context(), req.ID); err != nil {
			if respondStorageError(w, err) {
				return
			}
			if errors.Is(err, ErrNotFound) {
				respondJSONError(w, "게시물을 찾을 수 없습니다.", http.StatusNotFound)
				return
			}
			log.Printf("Error closing offer %s: %v", req.ID, err)
			respondJSONError(w, "마감 처리 중 오류가 발생했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "마감 처리되었습니다.",
		})
	}
}
