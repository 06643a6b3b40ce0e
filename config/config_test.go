// C:\Users\incheon\Desktop\KYUNGRAK\config\config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	got := applyDefaults(Config{})
	assert.Equal(t, "./kyungrak.db", got.DatabasePath)
	assert.Equal(t, "DATA", got.SettlementFolderPath)
	assert.Equal(t, 5, got.StorageTimeoutSeconds)
	assert.Equal(t, "001", got.AdminID)

	// 지정한 값은 덮어쓰지 않는다.
	got = applyDefaults(Config{DatabasePath: "./test.db", StorageTimeoutSeconds: 30})
	assert.Equal(t, "./test.db", got.DatabasePath)
	assert.Equal(t, 30, got.StorageTimeoutSeconds)
	assert.Equal(t, "DATA", got.SettlementFolderPath)
}

func TestLoadSecretsFromEnv(t *testing.T) {
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "부트패스")
	t.Setenv("PORTAL_PASSWORD", "포털패스")

	s := LoadSecrets()
	assert.Equal(t, "부트패스", s.AdminPassword)
	assert.Equal(t, "포털패스", s.PortalPassword)
}
