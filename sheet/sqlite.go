// C:\Users\incheon\Desktop\KYUNGRAK\sheet\sqlite.go
package sheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// 시트를 스프레드시트 그대로 셀 단위로 저장합니다. 열 이름 표류를
// 데이터로 보존하기 위해 고정 컬럼 테이블 대신 셀 저장소를 씁니다.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS sheet_headers (
    sheet     TEXT    NOT NULL,
    col_index INTEGER NOT NULL,
    name      TEXT    NOT NULL,
    PRIMARY KEY (sheet, col_index)
);

CREATE TABLE IF NOT EXISTS sheet_cells (
    sheet     TEXT    NOT NULL,
    row_index INTEGER NOT NULL,
    col_index INTEGER NOT NULL,
    value     TEXT    NOT NULL DEFAULT '',
    PRIMARY KEY (sheet, row_index, col_index)
);
`

// ApplySchema 는 셀 저장소 스키마를 적용합니다.
func ApplySchema(db *sqlx.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply sheet schema: %w", err)
	}
	return nil
}

// SQLite 는 sqlite 셀 저장소 위의 Table 구현입니다.
// 호출마다 timeout 을 적용하고, 만료는 ErrUnavailable 로 보고합니다.
type SQLite struct {
	db      *sqlx.DB
	name    string
	timeout time.Duration
}

func NewSQLite(db *sqlx.DB, name string, timeout time.Duration) *SQLite {
	return &SQLite{db: db, name: name, timeout: timeout}
}

func (s *SQLite) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// wrap 은 저장소 오류를 분류합니다. SQLITE_BUSY/LOCKED 는
// 사용량 제한(ErrRateLimited), 그 외 모든 I/O 실패는 ErrUnavailable 입니다.
// "0건 조회"와는 절대 섞이지 않습니다.
func (s *SQLite) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && (se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%s %s: %w", op, s.name, ErrRateLimited)
	}
	return fmt.Errorf("%s %s: %v: %w", op, s.name, err, ErrUnavailable)
}

// EnsureHeaders 는 헤더가 비어 있으면 기본 헤더를 기록합니다.
// 새로 만든 시트였는지 여부를 돌려줍니다.
func (s *SQLite) EnsureHeaders(ctx context.Context, headers []string) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sheet_headers WHERE sheet = ?`, s.name); err != nil {
		return false, s.wrap("ensure headers", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, s.wrap("ensure headers", err)
	}
	defer tx.Rollback()

	for i, h := range headers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_headers (sheet, col_index, name) VALUES (?, ?, ?)`,
			s.name, i, h); err != nil {
			return false, s.wrap("ensure headers", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, s.wrap("ensure headers", err)
	}
	return true, nil
}

func (s *SQLite) ReadAll(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var headers []string
	err := s.db.SelectContext(ctx, &headers,
		`SELECT name FROM sheet_headers WHERE sheet = ? ORDER BY col_index`, s.name)
	if err != nil {
		return nil, s.wrap("read headers", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_index, col_index, value FROM sheet_cells WHERE sheet = ? ORDER BY row_index, col_index`,
		s.name)
	if err != nil {
		return nil, s.wrap("read cells", err)
	}
	defer rows.Close()

	snap := &Snapshot{Headers: headers}
	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, s.wrap("scan cell", err)
		}
		for len(snap.Rows) <= r {
			snap.Rows = append(snap.Rows, make([]string, len(headers)))
		}
		for len(snap.Rows[r]) <= c {
			snap.Rows[r] = append(snap.Rows[r], "")
		}
		snap.Rows[r][c] = v
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap("read cells", err)
	}
	return snap, nil
}

func (s *SQLite) AppendRow(ctx context.Context, values []string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.wrap("append row", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.GetContext(ctx, &next,
		`SELECT COALESCE(MAX(row_index) + 1, 0) FROM sheet_cells WHERE sheet = ?`, s.name); err != nil {
		return s.wrap("append row", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sheet_cells (sheet, row_index, col_index, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return s.wrap("append row", err)
	}
	defer stmt.Close()

	// 빈 값도 기록해서 행의 존재 자체를 남깁니다.
	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, s.name, next, i, v); err != nil {
			return s.wrap("append row", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return s.wrap("append row", err)
	}
	return nil
}

func (s *SQLite) UpdateCell(ctx context.Context, row, col int, value string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var exists int
	err := s.db.GetContext(ctx, &exists,
		`SELECT 1 FROM sheet_cells WHERE sheet = ? AND row_index = ? LIMIT 1`, s.name, row)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRowNotFound
	}
	if err != nil {
		return s.wrap("update cell", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sheet_cells (sheet, row_index, col_index, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(sheet, row_index, col_index) DO UPDATE SET
			value = excluded.value`,
		s.name, row, col, value)
	if err != nil {
		return s.wrap("update cell", err)
	}
	return nil
}

func (s *SQLite) FindRow(ctx context.Context, col int, key string) (int, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var row int
	err := s.db.GetContext(ctx, &row, `
		SELECT row_index FROM sheet_cells
		WHERE sheet = ? AND col_index = ? AND TRIM(value) = TRIM(?)
		ORDER BY row_index LIMIT 1`,
		s.name, col, key)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, ErrRowNotFound
	}
	if err != nil {
		return -1, s.wrap("find row", err)
	}
	return row, nil
}
