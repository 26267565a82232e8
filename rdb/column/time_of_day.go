package column

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay 一天中的时刻（自零点起的时长），对应 MySQL TIME 列
// 可空列使用 *TimeOfDay。
type TimeOfDay time.Duration

// NewTimeOfDay 由时、分、秒构造
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// ParseTimeOfDay 解析 "HH:MM" 或 "HH:MM:SS[.fff]"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in time of day %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in time of day %q", s)
	}

	var frac time.Duration
	second := 0
	if len(parts) == 3 {
		secPart := parts[2]
		if dot := strings.IndexByte(secPart, '.'); dot >= 0 {
			f, ferr := strconv.ParseFloat("0"+secPart[dot:], 64)
			if ferr != nil {
				return 0, fmt.Errorf("invalid fraction in time of day %q", s)
			}
			frac = time.Duration(f * float64(time.Second))
			secPart = secPart[:dot]
		}
		second, err = strconv.Atoi(secPart)
		if err != nil || second < 0 || second > 59 {
			return 0, fmt.Errorf("invalid second in time of day %q", s)
		}
	}

	return NewTimeOfDay(hour, minute, second) + TimeOfDay(frac), nil
}

// Duration 返回自零点起的时长
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

// String 返回 "HH:MM:SS"
func (t TimeOfDay) String() string {
	d := time.Duration(t).Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Value 实现 driver.Valuer
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan 实现 sql.Scanner
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case string:
		return t.parseInto(v)
	case []byte:
		return t.parseInto(string(v))
	case time.Time:
		*t = NewTimeOfDay(v.Hour(), v.Minute(), v.Second())
		return nil
	case int64:
		// 部分驱动以秒数返回
		*t = TimeOfDay(time.Duration(v) * time.Second)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) parseInto(s string) error {
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	return t.parseInto(string(b))
}
