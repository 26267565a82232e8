package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/workshift/go-crud/rdb/column"
)

// Status 班次状态
type Status int

const (
	StatusInactive Status = 0 // 停用
	StatusActive   Status = 1 // 启用
)

func (s Status) String() string {
	if s == StatusActive {
		return "Active"
	}
	return "Inactive"
}

// Shift 班次
type Shift struct {
	ShiftID             uuid.UUID         `json:"shiftId"`
	ShiftCode           string            `json:"shiftCode"`
	ShiftName           string            `json:"shiftName"`
	ShiftDescription    string            `json:"shiftDescription"`
	ShiftBeginTime      *column.TimeOfDay `json:"shiftBeginTime"`
	ShiftEndTime        *column.TimeOfDay `json:"shiftEndTime"`
	ShiftBeginBreakTime *column.TimeOfDay `json:"shiftBeginBreakTime"`
	ShiftEndBreakTime   *column.TimeOfDay `json:"shiftEndBreakTime"`
	ShiftWorkingTime    float64           `json:"shiftWorkingTime"`
	ShiftBreakingTime   float64           `json:"shiftBreakingTime"`
	ShiftStatus         Status            `json:"shiftStatus"`
	CreatedBy           string            `json:"createdBy"`
	CreatedDate         time.Time         `json:"createdDate"`
	ModifiedBy          *string           `json:"modifiedBy"`
	ModifiedDate        *time.Time        `json:"modifiedDate"`
}

// Table shift 表元数据
var Table = column.MustRegister[Shift]("shift",
	column.Map("ShiftID", "shift_id", func(s *Shift) *uuid.UUID { return &s.ShiftID }),
	column.Map("ShiftCode", "shift_code", func(s *Shift) *string { return &s.ShiftCode }),
	column.Map("ShiftName", "shift_name", func(s *Shift) *string { return &s.ShiftName }),
	column.Map("ShiftDescription", "shift_description", func(s *Shift) *string { return &s.ShiftDescription }),
	column.Map("ShiftBeginTime", "shift_begin_time", func(s *Shift) **column.TimeOfDay { return &s.ShiftBeginTime }),
	column.Map("ShiftEndTime", "shift_end_time", func(s *Shift) **column.TimeOfDay { return &s.ShiftEndTime }),
	column.Map("ShiftBeginBreakTime", "shift_begin_break_time", func(s *Shift) **column.TimeOfDay { return &s.ShiftBeginBreakTime }),
	column.Map("ShiftEndBreakTime", "shift_end_break_time", func(s *Shift) **column.TimeOfDay { return &s.ShiftEndBreakTime }),
	column.Map("ShiftWorkingTime", "shift_working_time", func(s *Shift) *float64 { return &s.ShiftWorkingTime }),
	column.Map("ShiftBreakingTime", "shift_breaking_time", func(s *Shift) *float64 { return &s.ShiftBreakingTime }),
	column.Map("ShiftStatus", "shift_status", func(s *Shift) *Status { return &s.ShiftStatus }),
	column.Map("CreatedBy", "created_by", func(s *Shift) *string { return &s.CreatedBy }),
	column.Map("CreatedDate", "created_date", func(s *Shift) *time.Time { return &s.CreatedDate }),
	column.Map("ModifiedBy", "modified_by", func(s *Shift) **string { return &s.ModifiedBy }),
	column.Map("ModifiedDate", "modified_date", func(s *Shift) **time.Time { return &s.ModifiedDate }),
)
