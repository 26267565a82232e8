package column

import (
	"fmt"
	"reflect"
	"sync"
)

var registry sync.Map // reflect.Type -> *Table[T]

// Register 按实体类型登记表元数据
func Register[T any](t *Table[T]) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidTable)
	}
	typ := reflect.TypeFor[T]()
	if _, loaded := registry.LoadOrStore(typ, t); loaded {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, typ)
	}
	return nil
}

// MustRegister 创建并登记表元数据，元数据非法时直接 panic
// 通常在包级变量初始化时调用，使配置错误在进程启动时暴露。
func MustRegister[T any](name string, fields ...Field[T]) *Table[T] {
	t, err := NewTable[T](name, fields...)
	if err != nil {
		panic(err)
	}
	if err = Register[T](t); err != nil {
		panic(err)
	}
	return t
}

// Of 按实体类型查找表元数据
func Of[T any]() (*Table[T], error) {
	typ := reflect.TypeFor[T]()
	v, ok := registry.Load(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, typ)
	}
	return v.(*Table[T]), nil
}

// MustOf 按实体类型查找表元数据，未登记时 panic
func MustOf[T any]() *Table[T] {
	t, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return t
}
