// C:\Users\incheon\Desktop\KYUNGRAK\account\store.go
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kyungrak/identity"
	"kyungrak/model"
	"kyungrak/schema"
	"kyungrak/sheet"
)

// SheetName 은 계정 시트의 논리 이름입니다.
const SheetName = "accounts"

// DefaultHeaders 는 새 계정 시트를 만들 때의 기본 헤더입니다.
// 비밀번호가 아이디 바로 다음 열(B열)인 배치는 기존 시트 운영과 동일합니다.
var DefaultHeaders = []string{"아이디", "비밀번호", "이름", "구분", "승인여부", "가입일"}

// 시트 버전별 헤더 표기 차이는 여기 한 곳에서만 흡수합니다.
var fields = schema.FieldMap{
	"id":       {"아이디", "ID", "번호"},
	"password": {"비밀번호", "암호"},
	"name":     {"이름", "성명", "상호"},
	"role":     {"구분", "역할"},
	"approval": {"승인여부", "승인", "상태"},
	"created":  {"가입일", "등록일", "가입일시"},
}

var (
	ErrNotFound      = errors.New("account not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrNotApproved   = errors.New("account not approved")
	ErrDuplicateID   = errors.New("account id already exists")
)

// Store 는 계정 시트에 대한 조회/갱신을 담당합니다. 호출마다 상태를 새로
// 읽으며 세션 상태는 들고 있지 않습니다.
type Store struct {
	tbl sheet.Table

	// 가입 신청의 중복 검사와 행 추가 사이를 프로세스 내에서 직렬화합니다.
	// 별도 프로세스 간 경쟁은 막지 못합니다.
	mu sync.Mutex
}

func NewStore(tbl sheet.Table) *Store {
	return &Store{tbl: tbl}
}

func (s *Store) load(ctx context.Context) (*sheet.Snapshot, map[string]int, error) {
	snap, err := s.tbl.ReadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	cols, err := fields.Columns(snap.Headers)
	if err != nil {
		return nil, nil, fmt.Errorf("accounts sheet: %w", err)
	}
	return snap, cols, nil
}

// findByID 는 정규화된 번호로 행을 찾습니다. 셀 쪽 표기("i002", "2")가
// 흘러들어온 구형 행도 identity.Matches 로 잡아냅니다.
func findByID(snap *sheet.Snapshot, cols map[string]int, canonical string) int {
	for i := range snap.Rows {
		ok, err := identity.Matches(snap.Cell(i, cols["id"]), canonical)
		if err != nil {
			continue
		}
		if ok {
			return i
		}
	}
	return -1
}

func accountFromRow(snap *sheet.Snapshot, row int, cols map[string]int) *model.Account {
	id, err := identity.Normalize(snap.Cell(row, cols["id"]))
	if err != nil {
		id = strings.TrimSpace(snap.Cell(row, cols["id"]))
	}
	return &model.Account{
		ID:             id,
		Password:       strings.TrimSpace(snap.Cell(row, cols["password"])),
		DisplayName:    strings.TrimSpace(snap.Cell(row, cols["name"])),
		Role:           model.ParseRole(strings.TrimSpace(snap.Cell(row, cols["role"]))),
		ApprovalStatus: model.ParseApprovalStatus(strings.TrimSpace(snap.Cell(row, cols["approval"]))),
		CreatedAt:      strings.TrimSpace(snap.Cell(row, cols["created"])),
	}
}

// Authenticate 는 아이디/비밀번호를 확인합니다. 비밀번호는 불투명 문자열로
// 비교합니다(시트의 평문 운영 방식 그대로).
// 승인 전 계정은 ErrNotApproved 입니다.
func (s *Store) Authenticate(ctx context.Context, id, password string) (*model.Account, error) {
	canonical, err := identity.Normalize(id)
	if err != nil {
		// 형식이 틀린 아이디는 없는 아이디와 동일하게 취급합니다.
		return nil, ErrNotFound
	}
	snap, cols, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	row := findByID(snap, cols, canonical)
	if row < 0 {
		return nil, ErrNotFound
	}
	acct := accountFromRow(snap, row, cols)
	if acct.Password != strings.TrimSpace(password) {
		return nil, ErrWrongPassword
	}
	if acct.ApprovalStatus != model.ApprovalApproved {
		return nil, ErrNotApproved
	}
	return acct, nil
}

// RequestSignup 은 승인 대기 상태의 계정 행을 추가합니다.
func (s *Store) RequestSignup(ctx context.Context, id, password, displayName string, role model.Role) (*model.Account, error) {
	canonical, err := identity.Normalize(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, cols, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if findByID(snap, cols, canonical) >= 0 {
		return nil, ErrDuplicateID
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	values := make([]string, len(snap.Headers))
	values[cols["id"]] = canonical
	values[cols["password"]] = strings.TrimSpace(password)
	values[cols["name"]] = strings.TrimSpace(displayName)
	values[cols["role"]] = string(role)
	values[cols["approval"]] = string(model.ApprovalPending)
	values[cols["created"]] = now

	if err := s.tbl.AppendRow(ctx, values); err != nil {
		return nil, err
	}
	return &model.Account{
		ID:             canonical,
		Password:       strings.TrimSpace(password),
		DisplayName:    strings.TrimSpace(displayName),
		Role:           role,
		ApprovalStatus: model.ApprovalPending,
		CreatedAt:      now,
	}, nil
}

// Approve 는 아이디 목록을 일괄 승인합니다. 없는 아이디는 failed 에 기록하고
// 계속 진행합니다. 저장소 장애만 배치를 중단시킵니다.
func (s *Store) Approve(ctx context.Context, ids []string) (succeeded, failed []string, err error) {
	snap, cols, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, raw := range ids {
		canonical, nerr := identity.Normalize(raw)
		if nerr != nil {
			failed = append(failed, raw)
			continue
		}
		row := findByID(snap, cols, canonical)
		if row < 0 {
			failed = append(failed, raw)
			continue
		}
		if uerr := s.tbl.UpdateCell(ctx, row, cols["approval"], string(model.ApprovalApproved)); uerr != nil {
			return succeeded, failed, uerr
		}
		succeeded = append(succeeded, canonical)
	}
	return succeeded, failed, nil
}

// ChangePassword 는 해당 계정의 비밀번호 셀을 덮어씁니다.
func (s *Store) ChangePassword(ctx context.Context, id, newPassword string) error {
	canonical, err := identity.Normalize(id)
	if err != nil {
		return ErrNotFound
	}
	snap, cols, err := s.load(ctx)
	if err != nil {
		return err
	}
	row := findByID(snap, cols, canonical)
	if row < 0 {
		return ErrNotFound
	}
	return s.tbl.UpdateCell(ctx, row, cols["password"], strings.TrimSpace(newPassword))
}
