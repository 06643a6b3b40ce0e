// C:\Users\incheon\Desktop\KYUNGRAK\oauth\handler.go
package oauth

import (
	"encoding/json"
	"log"
	"net/http"
)

func respondJSONError(w http.ResponseWriter, message string, statusCode int) {
	log.Println("Error response:", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// StartHandler 는 제공자 인가 화면으로 보냅니다.
func StartHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if !client.Configured() {
			respondJSONError(w, "간편가입이 설정되어 있지 않습니다.", http.StatusServiceUnavailable)
			return
		}
		http.Redirect(w, r, client.BuildAuthorizationURL(r.URL.Query().Get("state")), http.StatusFound)
	}
}

// CallbackHandler 는 인가 코드를 신원으로 바꿔 돌려줍니다. UI 셸은 이
// 신원(표시 이름)으로 가입 신청 화면을 채운 뒤 /api/signup 을 호출합니다.
func CallbackHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respondJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			respondJSONError(w, "인가 코드가 없습니다.", http.StatusBadRequest)
			return
		}

		id, err := client.ExchangeCodeForIdentity(r.Context(), code)
		if err != nil {
			log.Printf("OAuth exchange error: %v", err)
			respondJSONError(w, "간편가입 인증에 실패했습니다. 다시 시도해주세요.", http.StatusBadGateway)
			return
		}

		log.Printf("OAuth identity resolved: %s", id.ExternalID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"identity": id,
			"state":    r.URL.Query().Get("state"),
		})
	}
}
