// C:\Users\incheon\Desktop\KYUNGRAK\loader\handler.go
package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"kyungrak/config"
	"kyungrak/model"
)

// ImportSettlementHandler 는 설정된 폴더를 다시 훑어 새 경락 내역 CSV 를
// 들여옵니다. 관리자 전용.
func ImportSettlementHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if model.ParseRole(r.Header.Get("X-User-Role")) != model.RoleAdmin || r.Header.Get("X-User-Role") == "" {
			http.Error(w, "관리자만 사용할 수 있습니다.", http.StatusForbidden)
			return
		}

		folder := config.GetConfig().SettlementFolderPath
		n, err := ImportSettlementFolder(db, folder)
		if err != nil {
			log.Printf("Error importing settlement folder %s: %v", folder, err)
			http.Error(w, "경락 내역 들여오기에 실패했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("%d건의 내역을 들여왔습니다.", n),
			"rows":    n,
		})
	}
}
