// C:\Users\incheon\Desktop\KYUNGRAK\automation\handler.go
package automation

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	"kyungrak/config"
	"kyungrak/loader"
	"kyungrak/model"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadSettlementHandler 는 포털에서 경락 내역 CSV 를 내려받아 바로
// records 시트에 들여옵니다. 관리자 전용.
func DownloadSettlementHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-User-Role") == "" || model.ParseRole(r.Header.Get("X-User-Role")) != model.RoleAdmin {
			writeJSONError(w, "관리자만 사용할 수 있습니다.", http.StatusForbidden)
			return
		}

		cfg := config.GetConfig()
		secrets := config.LoadSecrets()

		if cfg.PortalURL == "" || cfg.PortalUserID == "" || secrets.PortalPassword == "" {
			writeJSONError(w, "포털 주소/아이디/비밀번호가 설정되지 않았습니다. 설정 화면에서 입력해주세요.", http.StatusBadRequest)
			return
		}

		saveDir := cfg.DownloadFolderPath
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("다운로드 폴더 설정이 없어 임시 폴더를 사용합니다: %s", saveDir)
		}

		log.Println("Starting settlement portal automation...")
		filePath, err := DownloadSettlementCSV(cfg.PortalURL, cfg.PortalUserID, secrets.PortalPassword, saveDir)
		if err != nil {
			log.Printf("Automation Error: %v", err)
			writeJSONError(w, "자동 수신 오류: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == "NO_DATA" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "새로 수신할 내역이 없습니다.",
			})
			return
		}

		log.Printf("Importing downloaded file: %s", filePath)
		n, err := loader.ImportSettlementCSV(db, filePath)
		if err != nil {
			writeJSONError(w, "내역 들여오기 중 오류: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "success",
			"message":  fmt.Sprintf("다운로드 및 등록 완료: %d건", n),
			"filePath": filePath,
			"rows":     n,
		})
	}
}
