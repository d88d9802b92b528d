package attendance

import "strings"

// RemarkEditor applies remark edits according to the review state of a record.
type RemarkEditor interface {
	Apply(next Remark) (Remark, error)
	Locked() bool
}

// DraftRemark has not been reviewed; any edit is accepted.
type DraftRemark struct {
	Current Remark
}

func (d DraftRemark) Apply(next Remark) (Remark, error) { return next, nil }
func (DraftRemark) Locked() bool                         { return false }

// ReviewedRemark was set by a reviewer and is frozen. Resubmitting the same
// values is allowed so the rest of the record can still be corrected; text is
// compared without surrounding whitespace.
type ReviewedRemark struct {
	Current    Remark
	ReviewedBy string
}

func (r ReviewedRemark) Apply(next Remark) (Remark, error) {
	if next.Status != r.Current.Status || strings.TrimSpace(next.Text) != strings.TrimSpace(r.Current.Text) {
		return r.Current, ErrRemarkProtected
	}
	return r.Current, nil
}

func (ReviewedRemark) Locked() bool { return true }

// EditableRemark picks the editor for an existing row; nil means a new record.
func EditableRemark(existing *Attendance) RemarkEditor {
	if existing == nil {
		return DraftRemark{}
	}

	current := Remark{Text: existing.RemarkText, Status: existing.RemarkStatus}
	if existing.RemarkApprovedBy != nil && *existing.RemarkApprovedBy != "" && strings.TrimSpace(existing.RemarkText) != "" {
		return ReviewedRemark{Current: current, ReviewedBy: *existing.RemarkApprovedBy}
	}
	return DraftRemark{Current: current}
}
