package shift

import (
	"github.com/workshift/go-crud/rdb/column"
)

// AddRequest 新增班次请求，时间取值 "HH:MM" 或 "HH:MM:SS"
type AddRequest struct {
	ShiftCode           string            `json:"shiftCode"`
	ShiftName           string            `json:"shiftName"`
	ShiftDescription    string            `json:"shiftDescription"`
	ShiftBeginTime      *column.TimeOfDay `json:"shiftBeginTime"`
	ShiftEndTime        *column.TimeOfDay `json:"shiftEndTime"`
	ShiftBeginBreakTime *column.TimeOfDay `json:"shiftBeginBreakTime"`
	ShiftEndBreakTime   *column.TimeOfDay `json:"shiftEndBreakTime"`
	ShiftWorkingTime    float64           `json:"shiftWorkingTime"`
	ShiftBreakingTime   float64           `json:"shiftBreakingTime"`
}

// UpdateRequest 修改班次请求
type UpdateRequest struct {
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
}
