package query

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier 验证表名或列名是否合法
func IsValidIdentifier(identifier string) bool {
	// 仅允许字母、数字、下划线，且不能以数字开头
	return identifierPattern.MatchString(identifier)
}

// isValidCondition 验证条件语句是否合法
func isValidCondition(condition string) bool {
	// 简单验证条件中是否包含危险字符
	return !strings.Contains(condition, ";") && !strings.Contains(condition, "--")
}

func mustIdentifier(identifier string) string {
	if !IsValidIdentifier(identifier) {
		panic("Invalid identifier: " + identifier)
	}
	return identifier
}

func mustIdentifiers(identifiers []string) []string {
	for _, id := range identifiers {
		mustIdentifier(id)
	}
	return identifiers
}
