package column

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tx7do/go-utils/stringcase"

	"github.com/workshift/go-crud/rdb/query"
)

var (
	ErrInvalidTable      = errors.New("column: invalid table metadata")
	ErrTypeMismatch      = errors.New("column: value type mismatch")
	ErrNotRegistered     = errors.New("column: entity type not registered")
	ErrAlreadyRegistered = errors.New("column: entity type already registered")
)

// Table 实体的表元数据：表名、有序的列映射以及主键列
// 创建后不可变，可并发读取。
type Table[T any] struct {
	name    string
	fields  []Field[T]
	columns []string
	index   map[string]int
	id      int
}

// NewTable 创建表元数据
// 主键列按约定命名为 "<table>_id"，且必须存在。
func NewTable[T any](name string, fields ...Field[T]) (*Table[T], error) {
	if !query.IsValidIdentifier(name) {
		return nil, fmt.Errorf("%w: table name %q", ErrInvalidTable, name)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: table %s has no mapped fields", ErrInvalidTable, name)
	}

	t := &Table[T]{
		name:    name,
		fields:  make([]Field[T], 0, len(fields)),
		columns: make([]string, 0, len(fields)),
		index:   make(map[string]int, len(fields)),
		id:      -1,
	}

	identity := name + "_id"
	for i, f := range fields {
		if !query.IsValidIdentifier(f.column) {
			return nil, fmt.Errorf("%w: table %s column %q", ErrInvalidTable, name, f.column)
		}
		if f.addr == nil {
			return nil, fmt.Errorf("%w: table %s column %s has no accessor", ErrInvalidTable, name, f.column)
		}

		key := strings.ToLower(f.column)
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("%w: table %s duplicate column %s", ErrInvalidTable, name, f.column)
		}

		t.index[key] = i
		t.fields = append(t.fields, f)
		t.columns = append(t.columns, f.column)

		if strings.EqualFold(f.column, identity) {
			t.id = i
		}
	}

	if t.id < 0 {
		return nil, fmt.Errorf("%w: table %s has no identity column %s", ErrInvalidTable, name, identity)
	}

	return t, nil
}

// Name 返回表名
func (t *Table[T]) Name() string {
	return t.name
}

// Columns 返回全部列名（声明顺序）
func (t *Table[T]) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Fields 返回全部字段映射（声明顺序）
func (t *Table[T]) Fields() []Field[T] {
	out := make([]Field[T], len(t.fields))
	copy(out, t.fields)
	return out
}

// Identity 返回主键字段
func (t *Table[T]) Identity() Field[T] {
	return t.fields[t.id]
}

// Lookup 按列名查找字段，不区分大小写；找不到且 column 是合法标识符时再按 snake_case 形式查找
func (t *Table[T]) Lookup(column string) (Field[T], bool) {
	column = strings.TrimSpace(column)
	if column == "" {
		return Field[T]{}, false
	}

	if i, ok := t.index[strings.ToLower(column)]; ok {
		return t.fields[i], true
	}

	if !query.IsValidIdentifier(column) {
		return Field[T]{}, false
	}

	if i, ok := t.index[strings.ToLower(stringcase.ToSnakeCase(column))]; ok {
		return t.fields[i], true
	}

	return Field[T]{}, false
}

// Addrs 返回实体所有字段的地址，顺序与 Columns 一致
func (t *Table[T]) Addrs(e *T) []any {
	out := make([]any, 0, len(t.fields))
	for _, f := range t.fields {
		out = append(out, f.Addr(e))
	}
	return out
}

// Values 返回实体所有字段的值，顺序与 Columns 一致
func (t *Table[T]) Values(e *T) []any {
	out := make([]any, 0, len(t.fields))
	for _, f := range t.fields {
		out = append(out, f.Get(e))
	}
	return out
}

// NonIdentity 返回除主键外的列名与对应的值
func (t *Table[T]) NonIdentity(e *T) ([]string, []any) {
	cols := make([]string, 0, len(t.fields)-1)
	vals := make([]any, 0, len(t.fields)-1)
	for i, f := range t.fields {
		if i == t.id {
			continue
		}
		cols = append(cols, f.column)
		vals = append(vals, f.Get(e))
	}
	return cols, vals
}
