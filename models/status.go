package models

import "fmt"

// DocumentStatus is a workflow status code. Codes are stable strings; the
// numeric codes exist only for legacy clients and exports, never for ordering
// or persistence.
type DocumentStatus string

const (
	StatusDraft                     DocumentStatus = "DRAFT"
	StatusRegistered                DocumentStatus = "REGISTERED"
	StatusDistributed               DocumentStatus = "DISTRIBUTED"
	StatusSpecialistProcessing      DocumentStatus = "SPECIALIST_PROCESSING"
	StatusSubmittedToLeader         DocumentStatus = "SUBMITTED_TO_LEADER"
	StatusLeaderReviewing           DocumentStatus = "LEADER_REVIEWING"
	StatusLeaderCommented           DocumentStatus = "LEADER_COMMENTED"
	StatusHeaderDepartmentReviewing DocumentStatus = "HEADER_DEPARTMENT_REVIEWING"
	StatusHeaderDepartmentCommented DocumentStatus = "HEADER_DEPARTMENT_COMMENTED"
	StatusHeaderDepartmentApproved  DocumentStatus = "HEADER_DEPARTMENT_APPROVED"
	StatusFormatCorrection          DocumentStatus = "FORMAT_CORRECTION"
	StatusFormatCorrected           DocumentStatus = "FORMAT_CORRECTED"
	StatusApproved                  DocumentStatus = "APPROVED"
	StatusRejected                  DocumentStatus = "REJECTED"
	StatusPublished                 DocumentStatus = "PUBLISHED"
)

type statusInfo struct {
	NumericCode int
	Display     string
}

var statusCatalog = map[DocumentStatus]statusInfo{
	StatusDraft:                     {1, "Dự thảo"},
	StatusRegistered:                {2, "Đã vào sổ"},
	StatusDistributed:               {3, "Đã phân phối"},
	StatusSpecialistProcessing:      {4, "Chuyên viên đang xử lý"},
	StatusSubmittedToLeader:         {5, "Đã trình thủ trưởng"},
	StatusLeaderReviewing:           {6, "Thủ trưởng đang xem xét"},
	StatusLeaderCommented:           {7, "Thủ trưởng đã cho ý kiến"},
	StatusHeaderDepartmentReviewing: {8, "Chỉ huy đơn vị đang xem xét"},
	StatusHeaderDepartmentCommented: {9, "Chỉ huy đơn vị đã cho ý kiến"},
	StatusHeaderDepartmentApproved:  {10, "Chỉ huy đơn vị đã phê duyệt"},
	StatusFormatCorrection:          {11, "Trả lại chỉnh sửa thể thức"},
	StatusFormatCorrected:           {12, "Đã chỉnh sửa thể thức"},
	StatusApproved:                  {13, "Đã phê duyệt"},
	StatusRejected:                  {14, "Bị từ chối"},
	StatusPublished:                 {15, "Đã phát hành"},
}

// statusOrder fixes iteration order for AllStatuses and exports.
var statusOrder = []DocumentStatus{
	StatusDraft,
	StatusRegistered,
	StatusDistributed,
	StatusSpecialistProcessing,
	StatusSubmittedToLeader,
	StatusLeaderReviewing,
	StatusLeaderCommented,
	StatusHeaderDepartmentReviewing,
	StatusHeaderDepartmentCommented,
	StatusHeaderDepartmentApproved,
	StatusFormatCorrection,
	StatusFormatCorrected,
	StatusApproved,
	StatusRejected,
	StatusPublished,
}

// Valid reports whether the code is part of the catalog.
func (s DocumentStatus) Valid() bool {
	_, ok := statusCatalog[s]
	return ok
}

// DisplayName returns the Vietnamese display label, or the raw code when the
// status is unknown.
func (s DocumentStatus) DisplayName() string {
	if info, ok := statusCatalog[s]; ok {
		return info.Display
	}
	return string(s)
}

// NumericCode returns the legacy numeric code, 0 for unknown statuses.
func (s DocumentStatus) NumericCode() int {
	return statusCatalog[s].NumericCode
}

// IsTerminal reports whether the workflow ends here. REJECTED is terminal for
// ordinary transitions but recoverable through resubmission.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusPublished || s == StatusRejected
}

// ParseStatus validates a raw status code.
func ParseStatus(code string) (DocumentStatus, error) {
	s := DocumentStatus(code)
	if !s.Valid() {
		return "", fmt.Errorf("unknown document status code '%s'", code)
	}
	return s, nil
}

// StatusFromNumericCode resolves a legacy numeric code.
func StatusFromNumericCode(code int) (DocumentStatus, error) {
	for s, info := range statusCatalog {
		if info.NumericCode == code {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown numeric status code %d", code)
}

// AllStatuses returns every catalog status in workflow order.
func AllStatuses() []DocumentStatus {
	out := make([]DocumentStatus, len(statusOrder))
	copy(out, statusOrder)
	return out
}
