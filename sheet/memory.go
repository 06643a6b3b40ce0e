// C:\Users\incheon\Desktop\KYUNGRAK\sheet\memory.go
package sheet

import (
	"context"
	"strings"
	"sync"
)

// Memory 는 테스트와 로컬 실행용 인메모리 Table 입니다.
// FailWith 로 저장소 장애를 주입할 수 있습니다.
type Memory struct {
	mu      sync.Mutex
	headers []string
	rows    [][]string
	failErr error
}

func NewMemory(headers []string, rows ...[]string) *Memory {
	m := &Memory{headers: headers}
	for _, r := range rows {
		m.rows = append(m.rows, m.pad(r))
	}
	return m
}

// FailWith 가 설정되면 이후 모든 호출이 해당 오류로 실패합니다.
// nil 을 주면 해제됩니다.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *Memory) pad(row []string) []string {
	out := make([]string, len(m.headers))
	copy(out, row)
	if len(row) > len(m.headers) {
		out = append(out, row[len(m.headers):]...)
	}
	return out
}

func (m *Memory) ReadAll(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	snap := &Snapshot{Headers: append([]string(nil), m.headers...)}
	for _, r := range m.rows {
		snap.Rows = append(snap.Rows, append([]string(nil), r...))
	}
	return snap, nil
}

func (m *Memory) AppendRow(ctx context.Context, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.rows = append(m.rows, m.pad(values))
	return nil
}

func (m *Memory) UpdateCell(ctx context.Context, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if row < 0 || row >= len(m.rows) {
		return ErrRowNotFound
	}
	for len(m.rows[row]) <= col {
		m.rows[row] = append(m.rows[row], "")
	}
	m.rows[row][col] = value
	return nil
}

func (m *Memory) FindRow(ctx context.Context, col int, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return -1, m.failErr
	}
	key = strings.TrimSpace(key)
	for i, r := range m.rows {
		if col >= 0 && col < len(r) && strings.TrimSpace(r[col]) == key {
			return i, nil
		}
	}
	return -1, ErrRowNotFound
}
