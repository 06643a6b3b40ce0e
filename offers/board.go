// C:\Users\incheon\Desktop\KYUNGRAK\offers\board.go
package offers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kyungrak/model"
	"kyungrak/schema"
	"kyungrak/sheet"
)

// SheetName 은 주문판(오더 시트)의 논리 이름입니다.
const SheetName = "offers"

// DefaultHeaders 는 새 주문판 시트를 만들 때의 기본 헤더입니다.
var DefaultHeaders = []string{"번호", "품목명", "규격", "단가", "수량", "상태", "등록일시"}

var fields = schema.FieldMap{
	"id":       {"번호", "ID"},
	"item":     {"품목명", "품목", "품명"},
	"spec":     {"규격", "스펙"},
	"price":    {"단가", "가격"},
	"quantity": {"수량"},
	"status":   {"상태", "진행상태"},
	"posted":   {"등록일시", "등록일"},
}

// ErrNotFound 는 해당 번호의 게시물이 없는 경우입니다.
var ErrNotFound = errors.New("offer not found")

// Board 는 추가 전용 주문판입니다. 상태 전이는 open -> closed 하나뿐이며
// 수량 차감 같은 재고 로직은 없습니다.
type Board struct {
	tbl sheet.Table
}

func NewBoard(tbl sheet.Table) *Board {
	return &Board{tbl: tbl}
}

func (b *Board) load(ctx context.Context) (*sheet.Snapshot, map[string]int, error) {
	snap, err := b.tbl.ReadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	cols, err := fields.Columns(snap.Headers)
	if err != nil {
		return nil, nil, fmt.Errorf("offers sheet: %w", err)
	}
	return snap, cols, nil
}

func offerFromRow(snap *sheet.Snapshot, row int, cols map[string]int) model.Offer {
	return model.Offer{
		ID:        strings.TrimSpace(snap.Cell(row, cols["id"])),
		ItemName:  strings.TrimSpace(snap.Cell(row, cols["item"])),
		Spec:      strings.TrimSpace(snap.Cell(row, cols["spec"])),
		UnitPrice: parseFloatCell(snap.Cell(row, cols["price"])),
		Quantity:  parseIntCell(snap.Cell(row, cols["quantity"])),
		Status:    model.ParseOfferStatus(strings.TrimSpace(snap.Cell(row, cols["status"]))),
		PostedAt:  strings.TrimSpace(snap.Cell(row, cols["posted"])),
	}
}

// Post 는 게시물 1건을 open 상태로 추가하고 발급한 번호를 돌려줍니다.
func (b *Board) Post(ctx context.Context, offer model.Offer) (string, error) {
	snap, cols, err := b.load(ctx)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	values := make([]string, len(snap.Headers))
	values[cols["id"]] = id
	values[cols["item"]] = strings.TrimSpace(offer.ItemName)
	values[cols["spec"]] = strings.TrimSpace(offer.Spec)
	values[cols["price"]] = formatFloatCell(offer.UnitPrice)
	values[cols["quantity"]] = fmt.Sprintf("%d", offer.Quantity)
	values[cols["status"]] = string(model.OfferOpen)
	values[cols["posted"]] = time.Now().Format("2006-01-02 15:04:05")

	if err := b.tbl.AppendRow(ctx, values); err != nil {
		return "", err
	}
	return id, nil
}

// ListOpen 은 현재 open 상태인 게시물만 최신순으로 돌려줍니다.
func (b *Board) ListOpen(ctx context.Context) ([]model.Offer, error) {
	return b.list(ctx, true)
}

// ListAll 은 마감 포함 전체 게시물을 최신순으로 돌려줍니다(관리자 화면용).
func (b *Board) ListAll(ctx context.Context) ([]model.Offer, error) {
	return b.list(ctx, false)
}

func (b *Board) list(ctx context.Context, openOnly bool) ([]model.Offer, error) {
	snap, cols, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Offer
	for i := range snap.Rows {
		o := offerFromRow(snap, i, cols)
		if o.ID == "" {
			continue
		}
		if openOnly && o.Status != model.OfferOpen {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].PostedAt > out[b].PostedAt
	})
	return out, nil
}

// Close 는 게시물을 마감합니다. 이미 마감된 게시물을 다시 마감해도
// 성공으로 처리합니다(멱등). 없는 번호만 ErrNotFound 입니다.
func (b *Board) Close(ctx context.Context, id string) error {
	snap, cols, err := b.load(ctx)
	if err != nil {
		return err
	}
	row := -1
	for i := range snap.Rows {
		if strings.TrimSpace(snap.Cell(i, cols["id"])) == strings.TrimSpace(id) {
			row = i
			break
		}
	}
	if row < 0 {
		return ErrNotFound
	}
	return b.tbl.UpdateCell(ctx, row, cols["status"], string(model.OfferClosed))
}

func parseFloatCell(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntCell(s string) int {
	v, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0
	}
	return v
}

func formatFloatCell(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
