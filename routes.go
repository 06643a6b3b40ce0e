// C:\Users\incheon\Desktop\KYUNGRAK\routes.go
package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"kyungrak/account"
	"kyungrak/automation"
	"kyungrak/config"
	"kyungrak/loader"
	"kyungrak/model"
	"kyungrak/oauth"
	"kyungrak/offers"
	"kyungrak/records"
	"kyungrak/sheet"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {
	timeout := loader.Timeout()

	accounts := account.NewStore(sheet.NewSQLite(dbConn, account.SheetName, timeout))
	filter := records.NewFilter(sheet.NewSQLite(dbConn, records.SheetName, timeout))
	board := offers.NewBoard(sheet.NewSQLite(dbConn, offers.SheetName, timeout))

	cfg := config.GetConfig()
	secrets := config.LoadSecrets()
	oauthClient := oauth.NewClient(
		secrets.OAuthClientID, secrets.OAuthClientSecret,
		cfg.OAuthAuthURL, cfg.OAuthTokenURL, cfg.OAuthRedirectURL, cfg.OAuthUserInfoURL)

	mux.HandleFunc("/api/login", account.LoginHandler(accounts))
	mux.HandleFunc("/api/signup", account.SignupHandler(accounts))
	mux.HandleFunc("/api/accounts/approve", account.ApproveHandler(accounts))
	mux.HandleFunc("/api/password", account.ChangePasswordHandler(accounts))

	mux.HandleFunc("/api/records", records.QueryHandler(filter))
	mux.HandleFunc("/api/records/import", loader.ImportSettlementHandler(dbConn))

	mux.HandleFunc("/api/offers", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			offers.ListHandler(board)(w, r)
		case http.MethodPost:
			offers.PostHandler(board)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/offers/close", offers.CloseHandler(board))

	mux.HandleFunc("/api/oauth/start", oauth.StartHandler(oauthClient))
	mux.HandleFunc("/api/oauth/callback", oauth.CallbackHandler(oauthClient))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			// 설정 변경은 관리자 전용입니다.
			if r.Header.Get("X-User-Role") == "" || model.ParseRole(r.Header.Get("X-User-Role")) != model.RoleAdmin {
				http.Error(w, "관리자만 사용할 수 있습니다.", http.StatusForbidden)
				return
			}
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/automation/settlement/download", automation.DownloadSettlementHandler(dbConn))
}
