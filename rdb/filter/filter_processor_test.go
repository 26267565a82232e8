package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workshift/go-crud/rdb/query"
)

func TestProcessor_ProcessText(t *testing.T) {
	cases := []struct {
		name  string
		op    TextOperator
		where string
		arg   any
	}{
		{"Different", TextDifferent, "name != ?", "tom"},
		{"Contains", TextContains, "name LIKE ?", "%tom%"},
		{"NotContains", TextNotContains, "name NOT LIKE ?", "%tom%"},
		{"StartWith", TextStartWith, "name LIKE ?", "tom%"},
		{"EndWith", TextEndWith, "name LIKE ?", "%tom"},
	}

	proc := NewProcessor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qb := query.NewQueryBuilder("users", nil)
			proc.ProcessText(qb, tc.op, "name", "tom")

			where, args := qb.BuildWhereParam()
			assert.Equal(t, tc.where, where)
			assert.Equal(t, []any{tc.arg}, args)
		})
	}

	t.Run("None", func(t *testing.T) {
		qb := query.NewQueryBuilder("users", nil)
		proc.ProcessText(qb, TextNone, "name", "tom")
		assert.False(t, qb.HasConditions())
	})

	t.Run("NilBuilder", func(t *testing.T) {
		assert.Nil(t, proc.ProcessText(nil, TextContains, "name", "tom"))
	})
}

func TestProcessor_ProcessDate(t *testing.T) {
	cases := []struct {
		name  string
		op    DateOperator
		where string
		args  []any
	}{
		{"Equal", DateEqual, "DATE(created_at) = ?", []any{"2026-01-31"}},
		{"Different", DateDifferent, "DATE(created_at) != ?", []any{"2026-01-31"}},
		{"Less", DateLess, "created_at < ?", []any{"2026-01-31 00:00:00"}},
		{"LessOrEqual", DateLessOrEqual, "created_at < ?", []any{"2026-02-01 00:00:00"}},
		{"Greater", DateGreater, "created_at >= ?", []any{"2026-02-01 00:00:00"}},
		{"GreaterOrEqual", DateGreaterOrEqual, "created_at >= ?", []any{"2026-01-31 00:00:00"}},
		{"Empty", DateEmpty, "created_at IS NULL", []any{}},
		{"NotEmpty", DateNotEmpty, "created_at IS NOT NULL", []any{}},
	}

	proc := NewProcessor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qb := query.NewQueryBuilder("users", nil)
			proc.ProcessDate(qb, tc.op, "created_at", "31/01/2026")

			where, args := qb.BuildWhereParam()
			assert.Equal(t, tc.where, where)
			assert.Equal(t, tc.args, args)
		})
	}

	t.Run("UnparsableValueIsSkipped", func(t *testing.T) {
		for _, v := range []string{"", "2026-01-31", "31/13/2026", "yesterday"} {
			qb := query.NewQueryBuilder("users", nil)
			proc.ProcessDate(qb, DateEqual, "created_at", v)
			assert.False(t, qb.HasConditions(), v)
		}
	})

	t.Run("EmptyIgnoresValue", func(t *testing.T) {
		qb := query.NewQueryBuilder("users", nil)
		proc.ProcessDate(qb, DateEmpty, "created_at", "not a date")
		where, _ := qb.BuildWhereParam()
		assert.Equal(t, "created_at IS NULL", where)
	})

	t.Run("MonthEnd", func(t *testing.T) {
		qb := query.NewQueryBuilder("users", nil)
		proc.ProcessDate(qb, DateGreater, "created_at", "31/12/2025")
		_, args := qb.BuildWhereParam()
		assert.Equal(t, []any{"2026-01-01 00:00:00"}, args)
	})
}

func TestProcessor_Keyword(t *testing.T) {
	proc := NewProcessor()

	qb := query.NewQueryBuilder("users", nil)
	proc.Keyword(qb, []string{"code", "name"}, " ca ")
	where, args := qb.BuildWhereParam()
	assert.Equal(t, "(code LIKE ? OR name LIKE ?)", where)
	assert.Equal(t, []any{"% ca %", "% ca %"}, args)

	qb = query.NewQueryBuilder("users", nil)
	proc.Keyword(qb, []string{"code"}, "ca")
	_, args = qb.BuildWhereParam()
	assert.Equal(t, []any{"%ca%"}, args)

	qb = query.NewQueryBuilder("users", nil)
	proc.Keyword(qb, []string{"code"}, "   ")
	proc.Keyword(qb, nil, "ca")
	assert.False(t, qb.HasConditions())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05/03/2026")
	assert.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 3, int(d.Month()))
	assert.Equal(t, 5, d.Day())

	_, err = ParseDate("")
	assert.Error(t, err)
}
