package rdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/workshift/go-crud/audit"
	"github.com/workshift/go-crud/rdb/column"
	"github.com/workshift/go-crud/rdb/filter"
	paging "github.com/workshift/go-crud/rdb/pagination"
	"github.com/workshift/go-crud/rdb/query"
	"github.com/workshift/go-crud/rdb/sorting"
	"github.com/workshift/go-crud/result"
	"github.com/workshift/go-crud/viewer"
)

// Repository 基于实体元数据的通用仓库，T 为实体类型，K 为主键类型
// 每次调用独占一个连接，返回前释放。
type Repository[T any, K comparable] struct {
	client ConnProvider
	table  *column.Table[T]

	pagePaginator     *paging.PagePaginator
	structuredFilter  *filter.StructuredFilter
	structuredSorting *sorting.StructuredSorting

	debug bool

	log *log.Helper
}

// NewRepository 创建仓库，T 未登记元数据时 panic
func NewRepository[T any, K comparable](client ConnProvider, logger log.Logger) *Repository[T, K] {
	if logger == nil {
		logger = log.DefaultLogger
	}

	table := column.MustOf[T]()

	return &Repository[T, K]{
		client: client,
		table:  table,

		pagePaginator:     paging.NewPagePaginator(),
		structuredFilter:  filter.NewStructuredFilter(),
		structuredSorting: sorting.NewStructuredSorting(),

		log: log.NewHelper(log.With(logger, "module", "repository/"+table.Name())),
	}
}

// EnableDebug 以 debug 级别打印生成的 SQL
func (r *Repository[T, K]) EnableDebug() *Repository[T, K] {
	r.debug = true
	return r
}

// Table 返回实体元数据
func (r *Repository[T, K]) Table() *column.Table[T] {
	return r.table
}

// Resolve 将外部列名解析为元数据中的列名
func (r *Repository[T, K]) Resolve(name string) (string, bool) {
	f, ok := r.table.Lookup(name)
	if !ok {
		return "", false
	}
	return f.Column(), true
}

// NewQuery 创建选择全部映射列的查询
func (r *Repository[T, K]) NewQuery() *query.Builder {
	qb := query.NewQueryBuilder(r.table.Name(), r.log).Select(r.table.Columns()...)
	if r.debug {
		qb.EnableDebug()
	}
	return qb
}

func (r *Repository[T, K]) conn(ctx context.Context) (*sql.Conn, error) {
	if r.client == nil {
		return nil, ErrClientNotInitialized
	}
	conn, err := r.client.Conn(ctx)
	if err != nil {
		r.log.Errorf("acquire connection failed: %v", err)
		return nil, err
	}
	return conn, nil
}

func (r *Repository[T, K]) release(conn *sql.Conn) {
	if err := conn.Close(); err != nil {
		r.log.Errorf("release connection failed: %v", err)
	}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryRows 执行查询并按元数据列顺序扫描为实体
func (r *Repository[T, K]) queryRows(ctx context.Context, q queryer, sqlStr string, args ...any) ([]*T, error) {
	rows, err := q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		r.log.Errorf("query failed: %v", err)
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.log.Errorf("failed to close rows: %v", cerr)
		}
	}()

	items := make([]*T, 0)
	for rows.Next() {
		e := new(T)
		if err = rows.Scan(r.table.Addrs(e)...); err != nil {
			r.log.Errorf("scan row failed: %v", err)
			return nil, err
		}
		items = append(items, e)
	}

	if err = rows.Err(); err != nil {
		r.log.Errorf("rows iteration error: %v", err)
		return nil, err
	}

	return items, nil
}

func (r *Repository[T, K]) count(ctx context.Context, conn *sql.Conn, qb *query.Builder) (int64, error) {
	sqlStr, args := qb.BuildCount()

	var total int64
	if err := conn.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		r.log.Errorf("count query failed: %v", err)
		return 0, err
	}
	return total, nil
}

func (r *Repository[T, K]) exec(ctx context.Context, conn *sql.Conn, sqlStr string, args ...any) (int64, error) {
	if r.debug {
		r.log.Debugf("[Exec Debug]: %s %v", sqlStr, args)
	}

	res, err := conn.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		r.log.Errorf("exec failed: %v", err)
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.log.Errorf("read rows affected failed: %v", err)
		return 0, err
	}
	return affected, nil
}

// GetAll 返回全部记录
func (r *Repository[T, K]) GetAll(ctx context.Context) ([]*T, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	sqlStr, args := r.NewQuery().Build()
	return r.queryRows(ctx, conn, sqlStr, args...)
}

// GetByID 按主键查询，不存在时返回 nil, nil
func (r *Repository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	return r.getByID(ctx, conn, id)
}

func (r *Repository[T, K]) getByID(ctx context.Context, q queryer, id any) (*T, error) {
	sqlStr, args := r.NewQuery().
		Where(query.Equal(r.table.Identity().Column()), id).
		Build()

	items, err := r.queryRows(ctx, q, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// GetByFieldName 按任意映射列查询第一条匹配记录
// 列未映射时返回 ErrUnknownField，不存在时返回 nil, nil。
func (r *Repository[T, K]) GetByFieldName(ctx context.Context, value any, fieldName string) (*T, error) {
	col, ok := r.Resolve(fieldName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldName)
	}

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	sqlStr, args := r.NewQuery().
		Where(query.Equal(col), value).
		Limit(1).
		Build()

	items, err := r.queryRows(ctx, conn, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// GetPagination 返回第 pageIndex 页（从 0 开始），TotalItem 为全表行数
func (r *Repository[T, K]) GetPagination(ctx context.Context, pageSize, pageIndex int) (*result.OperationResult[T], error) {
	return r.ListWithFilter(ctx, pageSize, pageIndex, nil)
}

// ListWithFilter 关键字 + 按列过滤/排序 + 分页查询，TotalItem 为过滤后的行数
// keywordColumns 为关键字匹配的列，未映射的列被忽略。
func (r *Repository[T, K]) ListWithFilter(ctx context.Context, pageSize, pageIndex int, req *filter.Request, keywordColumns ...string) (*result.OperationResult[T], error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	qb := r.NewQuery()

	// filters
	if req != nil {
		if _, err = r.structuredFilter.BuildSelectors(qb, req, r.Resolve, keywordColumns); err != nil {
			r.log.Errorf("build structured filter selectors failed: %s", err.Error())
			return nil, err
		}
	}

	// 计数
	total, err := r.count(ctx, conn, qb)
	if err != nil {
		return nil, err
	}

	// order by
	if req != nil {
		r.structuredSorting.BuildOrderClause(qb, req.Clauses, r.Resolve)
	}

	// pagination
	r.pagePaginator.BuildClause(qb, pageIndex, pageSize)

	sqlStr, args := qb.Build()
	items, err := r.queryRows(ctx, conn, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return result.List(ctx, items, total), nil
}

// Count 统计满足条件的行数，where 为空时统计全表
// where 只能包含映射列与 "?" 占位符。
func (r *Repository[T, K]) Count(ctx context.Context, where string, args ...any) (int64, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer r.release(conn)

	qb := r.NewQuery()
	if strings.TrimSpace(where) != "" {
		qb.Where(where, args...)
	}

	return r.count(ctx, conn, qb)
}

// Save 插入一条记录并读回，两步在同一事务中完成
func (r *Repository[T, K]) Save(ctx context.Context, entity *T) (res *result.OperationResult[T], err error) {
	if entity == nil {
		return nil, ErrNilEntity
	}

	start := time.Now()
	id := r.table.Identity().Get(entity)
	defer func() {
		var affected int64
		if res != nil && res.IsSuccess {
			affected = 1
		}
		r.record(ctx, "Save", audit.OpInsert, []string{fmt.Sprint(id)}, affected, entity, start, err)
	}()

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("begin transaction failed: %v", err)
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			r.log.Errorf("rollback failed: %v", rerr)
		}
	}()

	sqlStr := query.Insert(r.table.Name(), r.table.Columns())
	if r.debug {
		r.log.Debugf("[Exec Debug]: %s %v", sqlStr, r.table.Values(entity))
	}
	if _, err = tx.ExecContext(ctx, sqlStr, r.table.Values(entity)...); err != nil {
		r.log.Errorf("insert failed: %v", err)
		return nil, err
	}

	saved, err := r.getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		r.log.Warnf("inserted %s %v could not be read back", r.table.Name(), id)
		res = result.Failure[T](ctx, result.MessageFailure)
		res.Data = entity
		return res, nil
	}

	if err = tx.Commit(); err != nil {
		r.log.Errorf("commit failed: %v", err)
		return nil, err
	}
	committed = true

	return result.Created(ctx, saved), nil
}

// Update 按主键更新全部非主键列，没有受影响的行时返回失败结果
func (r *Repository[T, K]) Update(ctx context.Context, entity *T) (res *result.OperationResult[T], err error) {
	if entity == nil {
		return nil, ErrNilEntity
	}

	start := time.Now()
	identity := r.table.Identity()
	id := identity.Get(entity)

	var affected int64
	defer func() {
		r.record(ctx, "Update", audit.OpUpdate, []string{fmt.Sprint(id)}, affected, entity, start, err)
	}()

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	cols, vals := r.table.NonIdentity(entity)
	sqlStr := query.Update(r.table.Name(), cols, query.Equal(identity.Column()))

	affected, err = r.exec(ctx, conn, sqlStr, append(vals, id)...)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		res = result.Failure[T](ctx, result.MessageFailure)
		res.Data = entity
		return res, nil
	}

	return result.Success(ctx, entity), nil
}

// UpdateByFieldName 将 ids 对应记录的单个列更新为 value，单条语句完成
func (r *Repository[T, K]) UpdateByFieldName(ctx context.Context, ids []K, value any, fieldName string) (res *result.OperationResult[T], err error) {
	col, ok := r.Resolve(fieldName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldName)
	}

	start := time.Now()
	var affected int64
	defer func() {
		r.record(ctx, "UpdateByFieldName", audit.OpUpdate, idStrings(ids), affected, map[string]any{col: value}, start, err)
	}()

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	sqlStr := query.Update(r.table.Name(), []string{col}, query.In(r.table.Identity().Column(), len(ids)))

	args := make([]any, 0, len(ids)+1)
	args = append(args, value)
	for _, id := range ids {
		args = append(args, id)
	}

	affected, err = r.exec(ctx, conn, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		return result.Failure[T](ctx, result.MessageFailure), nil
	}

	return result.Success[T](ctx, nil), nil
}

// DeleteByIds 按主键批量删除，单条语句完成
func (r *Repository[T, K]) DeleteByIds(ctx context.Context, ids []K) (res *result.OperationResult[T], err error) {
	start := time.Now()
	var affected int64
	defer func() {
		r.record(ctx, "DeleteByIds", audit.OpDelete, idStrings(ids), affected, nil, start, err)
	}()

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release(conn)

	sqlStr := query.Delete(r.table.Name(), query.In(r.table.Identity().Column(), len(ids)))

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	affected, err = r.exec(ctx, conn, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		return result.Failure[T](ctx, result.MessageNothingDeleted), nil
	}

	return result.Deleted[T](ctx), nil
}

// record 将变更写入 context 中的 Auditor，匿名调用不记录；写入失败只记日志
func (r *Repository[T, K]) record(ctx context.Context, action string, op audit.Operation, ids []string, affected int64, post any, start time.Time, err error) {
	vc := viewer.MustFromContext(ctx)
	if !vc.ShouldAudit() {
		return
	}

	entry := &audit.Entry{
		TraceID:   result.TraceID(ctx),
		Timestamp: time.Now().UTC(),
		Username:  vc.UserName(),
		Module:    "rdb",
		Action:    action,
		Resource:  r.table.Name(),
		Operation: op,
		TargetIDs: ids,
		Affected:  affected,
		CostMS:    time.Since(start).Milliseconds(),
	}

	switch {
	case err != nil:
		entry.Status = audit.StatusFail
		entry.ErrorMessage = err.Error()
	case affected == 0:
		entry.Status = audit.StatusFail
		entry.ErrorMessage = "no rows affected"
	default:
		entry.Status = audit.StatusOK
	}

	if post != nil {
		if perr := entry.SetPostValue(post); perr != nil {
			r.log.Warnf("marshal audit post value failed: %v", perr)
		}
	}

	if aerr := audit.MustFromContext(ctx).Record(ctx, entry); aerr != nil {
		r.log.Errorf("record audit entry failed: %v", aerr)
	}
}

func idStrings[K comparable](ids []K) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprint(id))
	}
	return out
}
