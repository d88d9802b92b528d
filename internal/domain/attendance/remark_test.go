package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditableRemark(t *testing.T) {
	reviewer := "hr-1"
	empty := ""

	t.Run("new record is a draft", func(t *testing.T) {
		editor := EditableRemark(nil)
		assert.False(t, editor.Locked())

		next := Remark{Text: "anything", Status: RemarkLeave}
		got, err := editor.Apply(next)
		require.NoError(t, err)
		assert.Equal(t, next, got)
	})

	t.Run("unreviewed row is a draft", func(t *testing.T) {
		editor := EditableRemark(&Attendance{RemarkText: "old", RemarkApprovedBy: &empty})
		assert.IsType(t, DraftRemark{}, editor)

		got, err := editor.Apply(Remark{Text: "new", Status: RemarkManual})
		require.NoError(t, err)
		assert.Equal(t, "new", got.Text)
	})

	t.Run("reviewer with blank remark stays a draft", func(t *testing.T) {
		editor := EditableRemark(&Attendance{RemarkText: "   ", RemarkApprovedBy: &reviewer})
		assert.False(t, editor.Locked())
	})

	t.Run("reviewed remark is frozen", func(t *testing.T) {
		current := Remark{Text: "sick", Status: RemarkLeave}
		editor := EditableRemark(&Attendance{RemarkText: current.Text, RemarkStatus: current.Status, RemarkApprovedBy: &reviewer})

		require.IsType(t, ReviewedRemark{}, editor)
		assert.True(t, editor.Locked())
		assert.Equal(t, reviewer, editor.(ReviewedRemark).ReviewedBy)

		_, err := editor.Apply(Remark{Text: "not sick", Status: RemarkLeave})
		assert.ErrorIs(t, err, ErrRemarkProtected)

		_, err = editor.Apply(Remark{Text: "sick", Status: RemarkManual})
		assert.ErrorIs(t, err, ErrRemarkProtected)

		got, err := editor.Apply(current)
		require.NoError(t, err)
		assert.Equal(t, current, got)
	})

	t.Run("reviewed remark ignores surrounding whitespace", func(t *testing.T) {
		stored := Remark{Text: "  sick leave \n", Status: RemarkLeave}
		editor := EditableRemark(&Attendance{RemarkText: stored.Text, RemarkStatus: stored.Status, RemarkApprovedBy: &reviewer})

		got, err := editor.Apply(Remark{Text: "sick leave", Status: RemarkLeave})
		require.NoError(t, err)
		assert.Equal(t, stored, got)

		_, err = editor.Apply(Remark{Text: "sick  leave", Status: RemarkLeave})
		assert.ErrorIs(t, err, ErrRemarkProtected)
	})
}
