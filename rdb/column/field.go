package column

import (
	"fmt"
)

// Field 将实体 T 的一个结构体字段绑定到数据库列
type Field[T any] struct {
	name   string
	column string

	addr func(*T) any
	get  func(*T) any
	set  func(*T, any) error
}

// Map 声明字段与列的映射，ref 返回字段地址，字段类型在编译期确定
func Map[T, V any](name, column string, ref func(*T) *V) Field[T] {
	return Field[T]{
		name:   name,
		column: column,
		addr: func(e *T) any {
			return ref(e)
		},
		get: func(e *T) any {
			return *ref(e)
		},
		set: func(e *T, v any) error {
			if v == nil {
				var zero V
				*ref(e) = zero
				return nil
			}
			tv, ok := v.(V)
			if !ok {
				return fmt.Errorf("%w: column %s expects %T, got %T", ErrTypeMismatch, column, *new(V), v)
			}
			*ref(e) = tv
			return nil
		},
	}
}

// Name 返回字段名
func (f Field[T]) Name() string { return f.name }

// Column 返回列名
func (f Field[T]) Column() string { return f.column }

// Addr 返回字段地址，用作 Scan 目标
func (f Field[T]) Addr(e *T) any { return f.addr(e) }

// Get 返回字段值，用作绑定参数
func (f Field[T]) Get(e *T) any { return f.get(e) }

// Set 设置字段值，类型不匹配时返回 ErrTypeMismatch
func (f Field[T]) Set(e *T, v any) error { return f.set(e, v) }
