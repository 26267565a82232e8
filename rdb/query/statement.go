package query

import (
	"fmt"
	"strings"
)

// Placeholders 生成 n 个以逗号分隔的 "?" 占位符
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// In 生成 "<col> IN (?, ?, ...)"，空集合返回恒假条件 "1 = 0"
func In(column string, n int) string {
	if n <= 0 {
		return "1 = 0"
	}
	return fmt.Sprintf("%s IN (%s)", mustIdentifier(column), Placeholders(n))
}

// Equal 生成 "<col> = ?"
func Equal(column string) string {
	return mustIdentifier(column) + " = ?"
}

// Insert 生成 INSERT 语句，值按 columns 顺序绑定
func Insert(table string, columns []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		mustIdentifier(table),
		strings.Join(mustIdentifiers(columns), ", "),
		Placeholders(len(columns)),
	)
}

// Update 生成 UPDATE 语句，SET 参数在前，where 参数在后
func Update(table string, columns []string, where string) string {
	sets := make([]string, 0, len(columns))
	for _, column := range columns {
		sets = append(sets, Equal(column))
	}

	if !isValidCondition(where) {
		panic("Invalid condition")
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", mustIdentifier(table), strings.Join(sets, ", "), where)
}

// Delete 生成 DELETE 语句
func Delete(table string, where string) string {
	if !isValidCondition(where) {
		panic("Invalid condition")
	}

	return fmt.Sprintf("DELETE FROM %s WHERE %s", mustIdentifier(table), where)
}
