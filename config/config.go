// C:\Users\incheon\Desktop\KYUNGRAK\config\config.go
package config

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath          string `json:"databasePath"`
	SettlementFolderPath  string `json:"settlementFolderPath"`  // 경락 내역 CSV 폴더
	SettlementEUCKR       bool   `json:"settlementEucKr"`       // 내보내기 파일이 EUC-KR 인지
	StorageTimeoutSeconds int    `json:"storageTimeoutSeconds"` // 시트 호출 타임아웃
	PortalURL             string `json:"portalUrl"`             // 공판장 정산 포털
	PortalUserID          string `json:"portalUserId"`
	DownloadFolderPath    string `json:"downloadFolderPath"`
	AdminID               string `json:"adminId"` // 최초 관리자 번호
	OAuthAuthURL          string `json:"oauthAuthUrl"`
	OAuthTokenURL         string `json:"oauthTokenUrl"`
	OAuthUserInfoURL      string `json:"oauthUserInfoUrl"`
	OAuthRedirectURL      string `json:"oauthRedirectUrl"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./kyungrak_config.json"

func defaults() Config {
	return Config{
		DatabasePath:          "./kyungrak.db",
		SettlementFolderPath:  "DATA",
		SettlementEUCKR:       true,
		StorageTimeoutSeconds: 5,
		DownloadFolderPath:    "DATA",
		AdminID:               "001",
	}
}

func applyDefaults(c Config) Config {
	d := defaults()
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.SettlementFolderPath == "" {
		c.SettlementFolderPath = d.SettlementFolderPath
	}
	if c.StorageTimeoutSeconds == 0 {
		c.StorageTimeoutSeconds = d.StorageTimeoutSeconds
	}
	if c.DownloadFolderPath == "" {
		c.DownloadFolderPath = d.DownloadFolderPath
	}
	if c.AdminID == "" {
		c.AdminID = d.AdminID
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = defaults()
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = applyDefaults(tempCfg)
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = applyDefaults(newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Secrets 는 파일에 남기면 안 되는 값들입니다. .env 또는 환경변수에서 읽습니다.
type Secrets struct {
	AdminPassword     string // BOOTSTRAP_ADMIN_PASSWORD
	PortalPassword    string // PORTAL_PASSWORD
	OAuthClientID     string // OAUTH_CLIENT_ID
	OAuthClientSecret string // OAUTH_CLIENT_SECRET
}

// LoadSecrets 는 .env 가 있으면 읽고 환경변수에서 비밀값을 가져옵니다.
// .env 가 없는 것은 오류가 아닙니다.
func LoadSecrets() Secrets {
	_ = godotenv.Load()
	return Secrets{
		AdminPassword:     os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		PortalPassword:    os.Getenv("PORTAL_PASSWORD"),
		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
	}
}
