// C:\Users\incheon\Desktop\KYUNGRAK\model\account_types.go
package model

// Role 은 계정 구분입니다.
type Role string

const (
	RoleAdmin  Role = "admin"  // 관리자
	RoleBroker Role = "broker" // 중도매인
	RoleStaff  Role = "staff"  // 직원
	RoleTester Role = "tester" // 테스터
)

// ApprovalStatus 는 계정 승인 상태입니다.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// Account 는 계정 시트의 1행을 표현합니다.
// ID는 항상 정규화된 중도매인 번호("002" 형식)로 저장됩니다.
type Account struct {
	ID             string         `json:"id"`
	Password       string         `json:"-"`
	DisplayName    string         `json:"displayName"`
	Role           Role           `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	CreatedAt      string         `json:"createdAt"`
}

// ParseRole 은 시트 셀의 구분 표기를 Role로 변환합니다. 한글 표기도 허용합니다.
func ParseRole(s string) Role {
	switch s {
	case "admin", "관리자":
		return RoleAdmin
	case "broker", "중도매인":
		return RoleBroker
	case "staff", "직원":
		return RoleStaff
	case "tester", "테스터":
		return RoleTester
	default:
		return RoleBroker
	}
}

// ParseApprovalStatus 는 시트 셀의 승인 표기를 변환합니다.
func ParseApprovalStatus(s string) ApprovalStatus {
	switch s {
	case "approved", "승인", "승인완료", "Y", "y":
		return ApprovalApproved
	default:
		return ApprovalPending
	}
}
