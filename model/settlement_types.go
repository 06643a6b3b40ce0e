// C:\Users\incheon\Desktop\KYUNGRAK\model\settlement_types.go
package model

// SettlementRecord 는 경락(낙찰) 내역 시트의 1행입니다.
// 시트 셀은 전부 문자열이므로 숫자/날짜 변환은 records 패키지의 경계에서
// 한 번만 수행합니다. 변환 실패 시 원본 문자열을 보존합니다.
type SettlementRecord struct {
	Date      string  `json:"date"` // YYYY-MM-DD (정규화 후)
	ItemName  string  `json:"itemName"`
	Variety   string  `json:"variety"`
	Weight    float64 `json:"weight"`
	Grade     string  `json:"grade"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
	AmountOK  bool    `json:"amountParsed"` // false면 합계(Total)에서 제외
	AmountRaw string  `json:"amountRaw,omitempty"`
	BuyerCode string  `json:"buyerCode"` // 정규화된 중도매인 번호
}
