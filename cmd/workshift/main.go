package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/workshift/go-crud/audit"
	"github.com/workshift/go-crud/conf"
	"github.com/workshift/go-crud/rdb"
	"github.com/workshift/go-crud/rdb/filter"
	"github.com/workshift/go-crud/rdb/sorting"
	"github.com/workshift/go-crud/shift"
	"github.com/workshift/go-crud/viewer"
)

var (
	flagConf    string
	flagKeyword string
	flagFilter  string
	flagOrder   string
	flagPage    int
	flagSize    int
)

func init() {
	flag.StringVar(&flagConf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagKeyword, "keyword", "", "search keyword")
	flag.StringVar(&flagFilter, "filter", "", `column filters, eg: -filter '{"shift_code__contains":"CA"}'`)
	flag.StringVar(&flagOrder, "order", "", `sort order, eg: -order "shift_name desc, shift_code"`)
	flag.IntVar(&flagPage, "page", 0, "page index, starts at 0")
	flag.IntVar(&flagSize, "size", 20, "page size")
}

func newLogger(level log.Level) log.Logger {
	logger := log.With(log.NewStdLogger(os.Stderr),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	return log.NewFilter(logger, log.FilterLevel(level))
}

// buildRequest 合并 -keyword/-filter/-order 为过滤请求
func buildRequest(keyword, filterJSON, orderBy string) (*filter.Request, error) {
	clauses, err := filter.NewQueryStringConverter().Convert(filterJSON)
	if err != nil {
		return nil, err
	}

	sorts, err := sorting.NewOrderByStringConverter().Convert(orderBy)
	if err != nil {
		return nil, err
	}

	return &filter.Request{
		Keyword: keyword,
		Clauses: append(clauses, sorts...),
	}, nil
}

func run(ctx context.Context, bc *conf.Bootstrap, logger log.Logger) error {
	l := log.NewHelper(log.With(logger, "module", "workshift"))

	opts, err := bc.Data.Database.ClientOptions(logger)
	if err != nil {
		return err
	}

	client, err := rdb.NewClient(opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	if err = client.CheckConnection(ctx); err != nil {
		return err
	}

	if bc.Data.Database.Migrate {
		ddl, err := shift.Schema(client.DriverName())
		if err != nil {
			return err
		}
		if _, err = client.DB().ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("migrate shift table: %w", err)
		}
		l.Debug("shift table ready")
	}

	auditor := audit.NewLogAuditor(logger)
	defer func() {
		if ferr := auditor.Flush(ctx); ferr != nil {
			l.Errorf("flush audit log failed: %v", ferr)
		}
	}()

	ctx = viewer.WithContext(ctx, viewer.NewSystem("workshift-cli"))
	ctx = audit.WithAuditor(ctx, auditor)

	req, err := buildRequest(flagKeyword, flagFilter, flagOrder)
	if err != nil {
		return err
	}

	svc := shift.NewService(shift.NewRepository(client, logger), logger)

	res, err := svc.GetPaginationFilter(ctx, flagSize, flagPage, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func main() {
	flag.Parse()

	bc, err := conf.Load(flagConf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(bc.Log.FilterLevel())

	if err = run(context.Background(), bc, logger); err != nil {
		log.NewHelper(logger).Errorf("workshift: %v", err)
		os.Exit(1)
	}
}
