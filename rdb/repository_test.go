package rdb

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshift/go-crud/audit"
	"github.com/workshift/go-crud/rdb/column"
	"github.com/workshift/go-crud/rdb/filter"
	"github.com/workshift/go-crud/result"
	"github.com/workshift/go-crud/viewer"
)

type gadget struct {
	GadgetID   string
	GadgetCode string
	GadgetName string
	Weight     float64
	Stock      int
	CreatedAt  *time.Time
}

var _ = column.MustRegister[gadget]("gadget",
	column.Map("GadgetID", "gadget_id", func(g *gadget) *string { return &g.GadgetID }),
	column.Map("GadgetCode", "gadget_code", func(g *gadget) *string { return &g.GadgetCode }),
	column.Map("GadgetName", "gadget_name", func(g *gadget) *string { return &g.GadgetName }),
	column.Map("Weight", "weight", func(g *gadget) *float64 { return &g.Weight }),
	column.Map("Stock", "stock", func(g *gadget) *int { return &g.Stock }),
	column.Map("CreatedAt", "created_at", func(g *gadget) **time.Time { return &g.CreatedAt }),
)

const gadgetDDL = `CREATE TABLE gadget (
	gadget_id   TEXT PRIMARY KEY,
	gadget_code TEXT NOT NULL,
	gadget_name TEXT NOT NULL,
	weight      REAL NOT NULL DEFAULT 0,
	stock       INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NULL
)`

func createTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(
		WithDriver(DriverSQLite),
		WithDSN(filepath.Join(t.TempDir(), "gadget.db")),
		WithMaxOpenConns(1),
		WithLogger(log.DefaultLogger),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.CheckConnection(context.Background()))

	_, err = client.DB().Exec(gadgetDDL)
	require.NoError(t, err)

	return client
}

func at(year int, month time.Month, day, hour, minute int) *time.Time {
	v := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &v
}

func seed(t *testing.T, repo *Repository[gadget, string], items ...*gadget) {
	t.Helper()
	for _, it := range items {
		res, err := repo.Save(context.Background(), it)
		require.NoError(t, err)
		require.True(t, res.IsSuccess, it.GadgetID)
	}
}

type captureAuditor struct {
	mu      sync.Mutex
	entries []*audit.Entry
}

func (c *captureAuditor) Record(_ context.Context, e *audit.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
	return nil
}

func (c *captureAuditor) Flush(context.Context) error { return nil }

func TestRepository_ErrorBranches(t *testing.T) {
	ctx := context.Background()

	t.Run("client is nil", func(t *testing.T) {
		repo := NewRepository[gadget, string](nil, nil)

		_, err := repo.GetAll(ctx)
		assert.True(t, errors.Is(err, ErrClientNotInitialized))

		_, err = repo.GetPagination(ctx, 10, 0)
		assert.True(t, errors.Is(err, ErrClientNotInitialized))
	})

	t.Run("entity is nil", func(t *testing.T) {
		repo := NewRepository[gadget, string](createTestClient(t), nil)

		_, err := repo.Save(ctx, nil)
		assert.True(t, errors.Is(err, ErrNilEntity))

		_, err = repo.Update(ctx, nil)
		assert.True(t, errors.Is(err, ErrNilEntity))
	})

	t.Run("unregistered entity", func(t *testing.T) {
		type unknown struct{ ID string }
		assert.Panics(t, func() { NewRepository[unknown, string](nil, nil) })
	})

	t.Run("unknown field", func(t *testing.T) {
		repo := NewRepository[gadget, string](createTestClient(t), nil)

		_, err := repo.GetByFieldName(ctx, "x", "nonexistent_column")
		assert.True(t, errors.Is(err, ErrUnknownField))

		_, err = repo.UpdateByFieldName(ctx, []string{"g-1"}, "x", "nonexistent_column")
		assert.True(t, errors.Is(err, ErrUnknownField))
	})
}

func TestRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil)

	g := &gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "Gear", Weight: 1.5, Stock: 3, CreatedAt: at(2026, 1, 31, 8, 0)}

	res, err := repo.Save(ctx, g)
	require.NoError(t, err)
	assert.True(t, res.IsSuccess)
	assert.True(t, res.IsCreated)
	assert.Equal(t, result.StatusCreated, res.StatusCode)
	require.NotNil(t, res.Data)
	assert.Equal(t, "GA01", res.Data.GadgetCode)

	got, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, g.GadgetCode, got.GadgetCode)
	assert.Equal(t, g.GadgetName, got.GadgetName)
	assert.Equal(t, g.Weight, got.Weight)
	assert.Equal(t, g.Stock, got.Stock)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, g.CreatedAt.Equal(*got.CreatedAt), "%v != %v", g.CreatedAt, got.CreatedAt)

	missing, err := repo.GetByID(ctx, "g-404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byCode, err := repo.GetByFieldName(ctx, "GA01", "GadgetCode")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, "g-1", byCode.GadgetID)

	none, err := repo.GetByFieldName(ctx, "ZZ99", "gadget_code")
	require.NoError(t, err)
	assert.Nil(t, none)

	// 主键冲突：存储层错误原样返回
	_, err = repo.Save(ctx, &gadget{GadgetID: "g-1", GadgetCode: "GA02", GadgetName: "Dup"})
	assert.Error(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepository_NullableColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil)

	seed(t, repo, &gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "Gear"})

	got, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CreatedAt)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil)

	seed(t, repo, &gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "Gear"})

	res, err := repo.Update(ctx, &gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "Cog", Weight: 2})
	require.NoError(t, err)
	assert.True(t, res.IsSuccess)
	assert.Equal(t, result.StatusSuccess, res.StatusCode)

	got, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Cog", got.GadgetName)
	assert.Equal(t, 2.0, got.Weight)

	res, err = repo.Update(ctx, &gadget{GadgetID: "g-404", GadgetCode: "X"})
	require.NoError(t, err)
	assert.False(t, res.IsSuccess)
	assert.Equal(t, result.StatusFailure, res.StatusCode)
	assert.Equal(t, result.MessageFailure, res.Message)
	require.NotNil(t, res.Data)
	assert.Equal(t, "g-404", res.Data.GadgetID)
}

func TestRepository_UpdateByFieldName(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil)

	seed(t, repo,
		&gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "A", Stock: 1},
		&gadget{GadgetID: "g-2", GadgetCode: "GA02", GadgetName: "B", Stock: 1},
		&gadget{GadgetID: "g-3", GadgetCode: "GA03", GadgetName: "C", Stock: 1},
	)

	res, err := repo.UpdateByFieldName(ctx, []string{"g-1", "g-3"}, 0, "stock")
	require.NoError(t, err)
	assert.True(t, res.IsSuccess)

	zero, err := repo.Count(ctx, "stock = ?", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, zero)

	res, err = repo.UpdateByFieldName(ctx, nil, 0, "stock")
	require.NoError(t, err)
	assert.False(t, res.IsSuccess)
	assert.Equal(t, result.MessageFailure, res.Message)

	res, err = repo.UpdateByFieldName(ctx, []string{"g-404"}, 0, "stock")
	require.NoError(t, err)
	assert.False(t, res.IsSuccess)
}

func TestRepository_DeleteByIds(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil)

	seed(t, repo,
		&gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "A"},
		&gadget{GadgetID: "g-2", GadgetCode: "GA02", GadgetName: "B"},
	)

	res, err := repo.DeleteByIds(ctx, []string{"g-1", "g-2"})
	require.NoError(t, err)
	assert.True(t, res.IsSuccess)
	assert.Equal(t, result.StatusDeleted, res.StatusCode)

	res, err = repo.DeleteByIds(ctx, []string{"g-1", "g-2"})
	require.NoError(t, err)
	assert.False(t, res.IsSuccess)
	assert.Equal(t, result.MessageNothingDeleted, res.Message)

	res, err = repo.DeleteByIds(ctx, []string{})
	require.NoError(t, err)
	assert.False(t, res.IsSuccess)

	total, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestRepository_GetPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil)

	for _, id := range []string{"g-1", "g-2", "g-3", "g-4", "g-5"} {
		seed(t, repo, &gadget{GadgetID: id, GadgetCode: id, GadgetName: id})
	}

	cases := []struct {
		name        string
		size, index int
		items       int
	}{
		{"FirstPage", 2, 0, 2},
		{"LastPartialPage", 2, 2, 1},
		{"PastEnd", 2, 5, 0},
		{"ZeroSize", 0, 0, 0},
		{"NegativeIndex", 3, -1, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := repo.GetPagination(ctx, tc.size, tc.index)
			require.NoError(t, err)
			assert.True(t, res.IsSuccess)
			assert.Len(t, res.ListData, tc.items)
			assert.EqualValues(t, 5, res.TotalItem)
		})
	}
}

func TestRepository_ListWithFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[gadget, string](createTestClient(t), nil).EnableDebug()

	seed(t, repo,
		&gadget{GadgetID: "g-1", GadgetCode: "CA01", GadgetName: "Ca sáng", Weight: 8, CreatedAt: at(2026, 1, 30, 9, 0)},
		&gadget{GadgetID: "g-2", GadgetCode: "CA02", GadgetName: "Ca chiều", Weight: 8, CreatedAt: at(2026, 1, 31, 23, 30)},
		&gadget{GadgetID: "g-3", GadgetCode: "HC01", GadgetName: "Hành chính", Weight: 7.5, CreatedAt: at(2026, 2, 1, 0, 0)},
		&gadget{GadgetID: "g-4", GadgetCode: "CA03", GadgetName: "Ca đêm", Weight: 7.5},
	)

	codes := func(items []*gadget) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.GadgetCode)
		}
		return out
	}

	t.Run("Keyword", func(t *testing.T) {
		res, err := repo.ListWithFilter(ctx, 10, 0, &filter.Request{Keyword: "ca0"}, "gadget_code", "gadget_name")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CA01", "CA02", "CA03"}, codes(res.ListData))
		assert.EqualValues(t, 3, res.TotalItem)
	})

	t.Run("UnicodeCaseFold", func(t *testing.T) {
		res, err := repo.ListWithFilter(ctx, 10, 0, &filter.Request{Clauses: []*filter.Clause{
			{Column: "gadget_name", Value: "SÁNG", Text: filter.TextContains},
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"CA01"}, codes(res.ListData))

		res, err = repo.ListWithFilter(ctx, 10, 0, &filter.Request{Keyword: "CA SÁNG"}, "gadget_code", "gadget_name")
		require.NoError(t, err)
		assert.Equal(t, []string{"CA01"}, codes(res.ListData))

		res, err = repo.ListWithFilter(ctx, 10, 0, &filter.Request{Clauses: []*filter.Clause{
			{Column: "gadget_name", Value: "HÀNH", Text: filter.TextStartWith},
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"HC01"}, codes(res.ListData))

		res, err = repo.ListWithFilter(ctx, 10, 0, &filter.Request{Clauses: []*filter.Clause{
			{Column: "gadget_name", Value: "ĐÊM", Text: filter.TextNotContains},
		}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CA01", "CA02", "HC01"}, codes(res.ListData))

		// REAL 列按 SQLite 文本形式匹配
		res, err = repo.ListWithFilter(ctx, 10, 0, &filter.Request{Keyword: "8.0"}, "weight")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CA01", "CA02"}, codes(res.ListData))
	})

	t.Run("Contains", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "gadget_code", Value: "A0", Text: filter.TextContains},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CA01", "CA02", "CA03"}, codes(res.ListData))
	})

	t.Run("LessOrEqualIncludesWholeDay", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "created_at", Value: "31/01/2026", Date: filter.DateLessOrEqual},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CA01", "CA02"}, codes(res.ListData))
	})

	t.Run("EqualDay", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "CreatedAt", Value: "01/02/2026", Date: filter.DateEqual},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"HC01"}, codes(res.ListData))
	})

	t.Run("Empty", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "created_at", Date: filter.DateEmpty},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"CA03"}, codes(res.ListData))
	})

	t.Run("TwoKeySort", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "weight", Sort: filter.SortDescending},
			{Column: "gadget_code", Sort: filter.SortAscending},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"CA01", "CA02", "CA03", "HC01"}, codes(res.ListData))
		assert.EqualValues(t, 4, res.TotalItem)
	})

	t.Run("FilteredTotalIgnoresPaging", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "gadget_code", Value: "CA", Text: filter.TextStartWith, Sort: filter.SortAscending},
		}}
		res, err := repo.ListWithFilter(ctx, 2, 1, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"CA03"}, codes(res.ListData))
		assert.EqualValues(t, 3, res.TotalItem)
	})

	t.Run("UnmappedColumnAndBadDateAreIgnored", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "nonexistent", Value: "x", Text: filter.TextContains},
			{Column: "created_at", Value: "2026-01-31", Date: filter.DateEqual},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.Len(t, res.ListData, 4)
	})

	t.Run("InjectionValueIsBound", func(t *testing.T) {
		req := &filter.Request{Clauses: []*filter.Clause{
			{Column: "gadget_name", Value: "'; DROP TABLE gadget; --", Text: filter.TextContains},
		}}
		res, err := repo.ListWithFilter(ctx, 10, 0, req)
		require.NoError(t, err)
		assert.Empty(t, res.ListData)

		total, err := repo.Count(ctx, "")
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
	})
}

func TestRepository_Audit(t *testing.T) {
	auditor := &captureAuditor{}
	ctx := audit.WithAuditor(context.Background(), auditor)
	ctx = viewer.WithContext(ctx, viewer.NewUser("alice", "trace-1"))

	repo := NewRepository[gadget, string](createTestClient(t), nil)

	_, err := repo.Save(ctx, &gadget{GadgetID: "g-1", GadgetCode: "GA01", GadgetName: "A"})
	require.NoError(t, err)
	_, err = repo.DeleteByIds(ctx, []string{"g-1", "g-2"})
	require.NoError(t, err)
	_, err = repo.DeleteByIds(ctx, []string{"g-1"})
	require.NoError(t, err)

	require.Len(t, auditor.entries, 3)

	e := auditor.entries[0]
	assert.Equal(t, audit.OpInsert, e.Operation)
	assert.Equal(t, "gadget", e.Resource)
	assert.Equal(t, "alice", e.Username)
	assert.Equal(t, "trace-1", e.TraceID)
	assert.Equal(t, []string{"g-1"}, e.TargetIDs)
	assert.Equal(t, audit.StatusOK, e.Status)
	assert.NotEmpty(t, e.PostValue)

	e = auditor.entries[1]
	assert.Equal(t, audit.OpDelete, e.Operation)
	assert.EqualValues(t, 1, e.Affected)
	assert.Equal(t, audit.StatusOK, e.Status)

	e = auditor.entries[2]
	assert.Equal(t, audit.StatusFail, e.Status)
	assert.EqualValues(t, 0, e.Affected)

	// 匿名调用不记录
	anon := audit.WithAuditor(context.Background(), auditor)
	_, err = repo.DeleteByIds(anon, []string{"g-3"})
	require.NoError(t, err)
	assert.Len(t, auditor.entries, 3)
}
