package sorting

import (
	"encoding/json"
	"strings"

	"github.com/tx7do/go-utils/stringcase"
	"go.einride.tech/aip/ordering"

	"github.com/workshift/go-crud/rdb/filter"
)

// OrderByStringConverter 将排序字符串转换为只带排序方向的过滤子句
type OrderByStringConverter struct {
}

func NewOrderByStringConverter() *OrderByStringConverter {
	return &OrderByStringConverter{}
}

// Convert 支持 JSON 数组（["-shift_name","shift_code"]）与 AIP 格式（"shift_name desc, shift_code"）
func (obc OrderByStringConverter) Convert(orderBy string) ([]*filter.Clause, error) {
	orderBy = strings.TrimSpace(orderBy)
	if len(orderBy) == 0 {
		return nil, nil
	}

	if strings.HasPrefix(orderBy, "[") && strings.HasSuffix(orderBy, "]") {
		// JSON 格式
		return obc.ParseJsonString(orderBy)
	}

	// AIP 格式
	return obc.ParseAIPString(orderBy)
}

// ParseJsonString 解析 JSON 格式的排序字符串，"-" 前缀表示降序
func (obc OrderByStringConverter) ParseJsonString(orderByJson string) ([]*filter.Clause, error) {
	var strSlice []string
	if err := json.Unmarshal([]byte(orderByJson), &strSlice); err != nil {
		return nil, err
	}

	var clauses []*filter.Clause
	for _, item := range strSlice {
		item = strings.TrimSpace(item)

		sort := filter.SortAscending
		if strings.HasPrefix(item, "-") {
			sort = filter.SortDescending
			item = strings.TrimSpace(item[1:])
		}
		if len(item) == 0 {
			continue
		}

		clauses = append(clauses, &filter.Clause{
			Column: stringcase.ToSnakeCase(item),
			Sort:   sort,
		})
	}

	return clauses, nil
}

// ParseAIPString 解析 AIP 格式的排序字符串
func (obc OrderByStringConverter) ParseAIPString(orderByString string) ([]*filter.Clause, error) {
	var actual ordering.OrderBy
	if err := actual.UnmarshalString(orderByString); err != nil {
		return nil, err
	}

	clauses := make([]*filter.Clause, 0, len(actual.Fields))
	for _, item := range actual.Fields {
		sort := filter.SortAscending
		if item.Desc {
			sort = filter.SortDescending
		}

		clauses = append(clauses, &filter.Clause{
			Column: item.Path,
			Sort:   sort,
		})
	}

	return clauses, nil
}
