package filter

// Request 列表过滤请求：关键字 + 按列的过滤/排序子句
type Request struct {
	// Keyword 在固定列集合上做不区分大小写的子串匹配
	Keyword string `json:"searchKeyword"`

	// Clauses 按列的过滤/排序子句，过滤之间为 AND，排序按给定顺序组合
	Clauses []*Clause `json:"filterByShiftColumn"`
}

// Clause 单列的过滤/排序条件
type Clause struct {
	Column string       `json:"name"`
	Value  string       `json:"value"`
	Text   TextOperator `json:"filterColumnType"`
	Date   DateOperator `json:"dateFilterColumnType"`
	Sort   SortType     `json:"sortType"`
}

// ColumnResolver 将子句中的列名解析为元数据中的列名，未映射时返回 false
type ColumnResolver func(name string) (string, bool)
