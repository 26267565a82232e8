package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// TextOperator 文本列的比较操作
type TextOperator int

const (
	TextNone        TextOperator = iota // 不过滤
	TextDifferent                       // col != v
	TextContains                        // col LIKE %v%
	TextNotContains                     // col NOT LIKE %v%
	TextStartWith                       // col LIKE v%
	TextEndWith                         // col LIKE %v
)

func (o TextOperator) String() string {
	switch o {
	case TextDifferent:
		return "Different"
	case TextContains:
		return "Contains"
	case TextNotContains:
		return "NotContains"
	case TextStartWith:
		return "StartWith"
	case TextEndWith:
		return "EndWith"
	default:
		return "None"
	}
}

// DateOperator 日期列的比较操作
type DateOperator int

const (
	DateNone           DateOperator = iota // 不过滤
	DateEqual                              // DATE(col) = d
	DateDifferent                          // DATE(col) != d
	DateLess                               // col < d
	DateLessOrEqual                        // col < d + 1 天
	DateGreater                            // col >= d + 1 天
	DateGreaterOrEqual                     // col >= d
	DateEmpty                              // col IS NULL
	DateNotEmpty                           // col IS NOT NULL
)

func (o DateOperator) String() string {
	switch o {
	case DateEqual:
		return "Equal"
	case DateDifferent:
		return "Different"
	case DateLess:
		return "Less"
	case DateLessOrEqual:
		return "LessOrEqual"
	case DateGreater:
		return "Greater"
	case DateGreaterOrEqual:
		return "GreaterOrEqual"
	case DateEmpty:
		return "Empty"
	case DateNotEmpty:
		return "NotEmpty"
	default:
		return "None"
	}
}

// SortType 排序方向
type SortType int

const (
	SortDefault    SortType = iota // 不参与排序
	SortAscending                  // ASC
	SortDescending                 // DESC
)

func (s SortType) String() string {
	switch s {
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return "Default"
	}
}

// JSON 中的枚举序号与前端约定一致：
//
//	filterColumnType:     Different=0 Contains=1 NotContains=2 StartWith=3 EndWith=4
//	dateFilterColumnType: Equal=0 Different=1 Less=2 LessOrEqual=3 Greater=4 GreaterOrEqual=5 Empty=6 NotEmpty=7
//	sortType:             Descending=0 Ascending=1 Default=2
//
// null 或缺省表示不使用该操作。

const jsonNull = "null"

// wireOrdinal 解析 JSON 序号，null 返回 -1
func wireOrdinal(data []byte, name string) (int, error) {
	s := strings.TrimSpace(string(data))
	if s == jsonNull {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %s", name, s)
	}
	return n, nil
}

func (o TextOperator) MarshalJSON() ([]byte, error) {
	if o <= TextNone || o > TextEndWith {
		return []byte(jsonNull), nil
	}
	return []byte(strconv.Itoa(int(o) - 1)), nil
}

func (o *TextOperator) UnmarshalJSON(data []byte) error {
	n, err := wireOrdinal(data, "filterColumnType")
	if err != nil {
		return err
	}
	if n > int(TextEndWith-1) {
		return fmt.Errorf("unknown filterColumnType %d", n)
	}
	*o = TextOperator(n + 1)
	return nil
}

func (o DateOperator) MarshalJSON() ([]byte, error) {
	if o <= DateNone || o > DateNotEmpty {
		return []byte(jsonNull), nil
	}
	return []byte(strconv.Itoa(int(o) - 1)), nil
}

func (o *DateOperator) UnmarshalJSON(data []byte) error {
	n, err := wireOrdinal(data, "dateFilterColumnType")
	if err != nil {
		return err
	}
	if n > int(DateNotEmpty-1) {
		return fmt.Errorf("unknown dateFilterColumnType %d", n)
	}
	*o = DateOperator(n + 1)
	return nil
}

func (s SortType) MarshalJSON() ([]byte, error) {
	switch s {
	case SortDescending:
		return []byte("0"), nil
	case SortAscending:
		return []byte("1"), nil
	default:
		return []byte("2"), nil
	}
}

func (s *SortType) UnmarshalJSON(data []byte) error {
	n, err := wireOrdinal(data, "sortType")
	if err != nil {
		return err
	}
	switch n {
	case -1, 2:
		*s = SortDefault
	case 0:
		*s = SortDescending
	case 1:
		*s = SortAscending
	default:
		return fmt.Errorf("unknown sortType %d", n)
	}
	return nil
}
