// C:\Users\incheon\Desktop\KYUNGRAK\model\offer_types.go
package model

// OfferStatus 는 주문판 게시물의 상태입니다. open -> closed 단방향 전이만 있습니다.
type OfferStatus string

const (
	OfferOpen   OfferStatus = "open"
	OfferClosed OfferStatus = "closed"
)

// Offer 는 주문판(오더 시트)의 1행입니다. 관리자가 등록하고 중도매인이 조회합니다.
type Offer struct {
	ID        string      `json:"id"`
	ItemName  string      `json:"itemName"`
	Spec      string      `json:"spec"`
	UnitPrice float64     `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
	Status    OfferStatus `json:"status"`
	PostedAt  string      `json:"postedAt"` // YYYY-MM-DD HH:MM:SS
}

// ParseOfferStatus 는 시트 셀의 상태 표기를 변환합니다. 한글 표기도 허용합니다.
func ParseOfferStatus(s string) OfferStatus {
	switch s {
	case "closed", "마감", "종료":
		return OfferClosed
	default:
		return OfferOpen
	}
}
