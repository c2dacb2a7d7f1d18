// Package model defines the row-backed domain types and the sheet schemas
// they map onto. Sheet names, header rows, and column order are a fixed
// contract with spreadsheets that already exist in production; they must not
// be translated or reordered.
package model

// Sheet names within the club spreadsheets.
const (
	SheetUsers          = "사용자"
	SheetTransactions   = "거래"
	SheetTxItems        = "거래항목"
	SheetRPReports      = "RP"
	SheetRPItems        = "RP항목"
	SheetEventPurchases = "이벤트구매"
	SheetEventItems     = "이벤트항목"
	SheetVoucherTypes   = "지원권항목"
	SheetVoucherConfig  = "지원권설정"
	SheetVoucherBonus   = "지원권추가"
	SheetVoucherUsage   = "지원권사용"
	SheetOrgChart       = "조직도"
	SheetCalendar       = "일정"
)

// Header rows, written when a sheet is created or found headerless.
var (
	HeaderUsers          = []string{"고유번호", "이름", "직급", "ID", "PW"}
	HeaderTransactions   = []string{"날짜", "시간", "항목", "갯수", "금액", "공금액", "고유번호", "이름", "내용", "작성자고유번호"}
	HeaderTxItems        = []string{"항목명", "금액", "공금입금", "개수제한"}
	HeaderRPReports      = []string{"날짜", "시간", "항목", "개수", "금액", "특이사항", "작성자고유번호"}
	HeaderRPItems        = []string{"항목명", "금액"}
	HeaderEventPurchases = []string{"날짜", "시간", "항목", "개수", "금액", "상세내역", "구매자"}
	HeaderEventItems     = []string{"항목명", "금액", "개수"}
	HeaderVoucherTypes   = []string{"지원권명"}
	HeaderVoucherConfig  = []string{"설정명", "값"}
	HeaderVoucherBonus   = []string{"월", "고유번호", "추가횟수", "사유"}
	HeaderVoucherUsage   = []string{"월", "고유번호", "지원권명", "사용일시"}
	HeaderOrgChart       = []string{"이름", "직급", "이미지URL", "순서", "등록자", "직책"}
	HeaderCalendar       = []string{"날짜", "제목", "내용", "작성자", "작성일시"}
)

// VoucherMaxKey is the setting-name cell that holds the monthly voucher cap.
const VoucherMaxKey = "최대횟수"

// Cell returns column i of a row, or "" when the row is shorter. The Sheets
// API does not pad short rows, so trailing blank cells are simply absent.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
