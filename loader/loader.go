// C:\Users\incheon\Desktop\KYUNGRAK\loader\loader.go
package loader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"kyungrak/account"
	"kyungrak/config"
	"kyungrak/identity"
	"kyungrak/model"
	"kyungrak/offers"
	"kyungrak/parsers"
	"kyungrak/records"
	"kyungrak/sheet"
)

// 한 번 들여온 파일을 다시 들여오지 않기 위한 기록 테이블입니다.
const importLogSQL = `
CREATE TABLE IF NOT EXISTS imported_files (
    file_name   TEXT PRIMARY KEY,
    imported_at TEXT NOT NULL
);
`

// Timeout 은 설정의 시트 호출 타임아웃입니다.
func Timeout() time.Duration {
	return time.Duration(config.GetConfig().StorageTimeoutSeconds) * time.Second
}

// InitDatabase 는 시트 스키마를 적용하고, 세 시트의 헤더를 준비하고,
// 최초 관리자 계정과 경락 내역 CSV 를 들여옵니다.
func InitDatabase(db *sqlx.DB, secrets config.Secrets) error {
	log.Println("Applying sheet schema...")
	if err := sheet.ApplySchema(db); err != nil {
		return err
	}
	if _, err := db.Exec(importLogSQL); err != nil {
		return fmt.Errorf("failed to create import log table: %w", err)
	}
	log.Println("Schema applied successfully.")

	ctx := context.Background()
	timeout := Timeout()

	accounts := sheet.NewSQLite(db, account.SheetName, timeout)
	created, err := accounts.EnsureHeaders(ctx, account.DefaultHeaders)
	if err != nil {
		return fmt.Errorf("failed to prepare accounts sheet: %w", err)
	}
	if created {
		if err := bootstrapAdmin(ctx, accounts, secrets); err != nil {
			return err
		}
	}

	if _, err := sheet.NewSQLite(db, records.SheetName, timeout).EnsureHeaders(ctx, records.DefaultHeaders); err != nil {
		return fmt.Errorf("failed to prepare records sheet: %w", err)
	}
	if _, err := sheet.NewSQLite(db, offers.SheetName, timeout).EnsureHeaders(ctx, offers.DefaultHeaders); err != nil {
		return fmt.Errorf("failed to prepare offers sheet: %w", err)
	}

	folder := config.GetConfig().SettlementFolderPath
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		log.Printf("WARN: settlement folder %s not found, skipping import.", folder)
		return nil
	}
	n, err := ImportSettlementFolder(db, folder)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("Imported %d settlement rows.", n)
	}
	return nil
}

// bootstrapAdmin 은 새로 만든 계정 시트에 최초 관리자 행을 넣습니다.
// 비밀번호가 환경변수에 없으면 만들지 않고 경고만 남깁니다.
func bootstrapAdmin(ctx context.Context, tbl sheet.Table, secrets config.Secrets) error {
	if secrets.AdminPassword == "" {
		log.Println("WARN: BOOTSTRAP_ADMIN_PASSWORD not set. No admin account created.")
		return nil
	}
	adminID, err := identity.Normalize(config.GetConfig().AdminID)
	if err != nil {
		return fmt.Errorf("invalid admin id in config: %w", err)
	}
	// DefaultHeaders 순서 그대로 기록합니다(헤더를 방금 이 순서로 만들었습니다).
	row := []string{
		adminID,
		secrets.AdminPassword,
		"관리자",
		string(model.RoleAdmin),
		string(model.ApprovalApproved),
		time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := tbl.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	log.Printf("Bootstrap admin account created: %s", adminID)
	return nil
}

// ImportSettlementFolder 는 폴더의 *.csv 중 아직 들여오지 않은 파일을
// 전부 들여옵니다. 들여온 행 수를 돌려줍니다.
func ImportSettlementFolder(db *sqlx.DB, folder string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(folder, "*.csv"))
	if err != nil {
		return 0, fmt.Errorf("failed to list settlement folder: %w", err)
	}

	total := 0
	for _, path := range paths {
		var done int
		if err := db.Get(&done, `SELECT COUNT(*) FROM imported_files WHERE file_name = ?`, filepath.Base(path)); err != nil {
			return total, fmt.Errorf("failed to check import log: %w", err)
		}
		if done > 0 {
			continue
		}
		n, err := ImportSettlementCSV(db, path)
		if err != nil {
			// 한 파일이 깨져도 나머지는 계속 들여옵니다.
			log.Printf("WARN: failed to import %s: %v", path, err)
			continue
		}
		total += n
	}
	return total, nil
}

// ImportSettlementCSV 는 경락 내역 CSV 1개를 records 시트에 추가합니다.
// CSV 쪽 헤더와 시트 쪽 헤더가 달라도 records.Fields 로 맞춰 넣습니다.
func ImportSettlementCSV(db *sqlx.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	snap, err := parsers.ParseSettlementCSV(f, config.GetConfig().SettlementEUCKR)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ctx := context.Background()
	tbl := sheet.NewSQLite(db, records.SheetName, Timeout())
	target, err := tbl.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	targetCols, err := records.Fields.Columns(target.Headers)
	if err != nil {
		return 0, fmt.Errorf("records sheet: %w", err)
	}
	sourceCols, err := records.Fields.Columns(snap.Headers)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	count := 0
	for _, row := range snap.Rows {
		values := remapRow(row, sourceCols, targetCols, len(target.Headers))
		if err := tbl.AppendRow(ctx, values); err != nil {
			return count, err
		}
		count++
	}

	if _, err := db.Exec(`INSERT INTO imported_files (file_name, imported_at) VALUES (?, ?)`,
		filepath.Base(path), time.Now().Format("2006-01-02 15:04:05")); err != nil {
		return count, fmt.Errorf("failed to record import of %s: %w", path, err)
	}
	log.Printf("Imported %s: %d rows.", filepath.Base(path), count)
	return count, nil
}

// remapRow 는 CSV 행을 논리 필드 기준으로 시트의 열 배치에 맞춥니다.
func remapRow(row []string, sourceCols, targetCols map[string]int, width int) []string {
	values := make([]string, width)
	for field, si := range sourceCols {
		ti, ok := targetCols[field]
		if !ok || si < 0 || si >= len(row) || ti < 0 || ti >= width {
			continue
		}
		values[ti] = row[si]
	}
	return values
}
