package queryset

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/hmtmcse-com/queryset/internal/errs"
	"github.com/hmtmcse-com/queryset/internal/valuer"
	"github.com/hmtmcse-com/queryset/model"
)

type DBOption func(*DB)

// DB 是 sql.DB 的装饰器，语句 builder 都挂在它（或者 Tx）上执行
type DB struct {
	core
	db *sql.DB

	// stmts 预编译语句缓存，DBWithStmtCache 启用
	stmts         *lru.Cache
	stmtCacheSize int
}

// Open creates a DB instance with the provided driver and dsn.
// 默认使用 MySQL 方言和 unsafe 取值方案
func Open(driverName string, dsn string, opts ...DBOption) (*DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return OpenDB(db, opts...)
}

// OpenDB 用在用户已经自己创建好 sql.DB 的场景，例如需要先设置连接池参数
func OpenDB(db *sql.DB, opts ...DBOption) (*DB, error) {
	res := &DB{
		core: core{
			dialect:    MySQL,
			r:          model.NewRegistry(),
			valCreator: valuer.NewUnsafeValue,
		},
		db: db,
	}

	for _, opt := range opts {
		opt(res)
	}

	if res.stmtCacheSize > 0 {
		// 淘汰出缓存的语句要关闭，否则会泄露数据库侧的预编译句柄
		cache, err := lru.NewWithEvict(res.stmtCacheSize, func(key any, value any) {
			_ = value.(*sql.Stmt).Close()
		})
		if err != nil {
			return nil, err
		}
		res.stmts = cache
	}

	return res, nil
}

// MustOpen creates a DB with the provided options.
// If the creation fails, it panics.
func MustOpen(driverName string, dsn string, opts ...DBOption) *DB {
	db, err := Open(driverName, dsn, opts...)
	if err != nil {
		panic(err)
	}
	return db
}

func DBWithDialect(dialect Dialect) DBOption {
	return func(db *DB) {
		db.dialect = dialect
	}
}

func DBWithRegistry(r model.Registry) DBOption {
	return func(db *DB) {
		db.r = r
	}
}

// DBWithReflectValuer 切换到纯反射的取值方案，unsafe 方案是默认值
func DBWithReflectValuer() DBOption {
	return func(db *DB) {
		db.valCreator = valuer.NewReflectValue
	}
}

func DBWithMiddlewares(mdls ...Middleware) DBOption {
	return func(db *DB) {
		db.mdls = mdls
	}
}

// DBWithStmtCache 启用预编译语句缓存，size 是缓存的语句条数上限
func DBWithStmtCache(size int) DBOption {
	return func(db *DB) {
		db.stmtCacheSize = size
	}
}

func (db *DB) getCore() core {
	return db.core
}

func (db *DB) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if db.stmts != nil {
		stmt, err := db.stmt(ctx, query)
		if err != nil {
			return nil, err
		}
		return stmt.QueryContext(ctx, args...)
	}
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if db.stmts != nil {
		stmt, err := db.stmt(ctx, query)
		if err != nil {
			return nil, err
		}
		return stmt.ExecContext(ctx, args...)
	}
	return db.db.ExecContext(ctx, query, args...)
}

// stmt 返回 query 对应的预编译语句，没有命中缓存就现场编译一条
func (db *DB) stmt(ctx context.Context, query string) (*sql.Stmt, error) {
	if val, ok := db.stmts.Get(query); ok {
		return val.(*sql.Stmt), nil
	}

	stmt, err := db.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}

	if existed, _ := db.stmts.ContainsOrAdd(query, stmt); existed {
		// 并发编译了同一条语句，保留缓存里的那份
		_ = stmt.Close()
		if val, ok := db.stmts.Get(query); ok {
			return val.(*sql.Stmt), nil
		}
		// 刚好又被淘汰掉了，退化成不走缓存
		return db.db.PrepareContext(ctx, query)
	}

	return stmt, nil
}

func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		tx: tx,
		db: db,
	}, nil
}

// DoTx 事务闭包 API，fn 返回 error 或者 panic 的时候回滚，否则提交
func (db *DB) DoTx(ctx context.Context,
	fn func(ctx context.Context, tx *Tx) error,
	opts *sql.TxOptions) (err error) {
	var tx *Tx
	tx, err = db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	panicked := true
	defer func() {
		if panicked || err != nil {
			e := tx.Rollback()
			if e != nil {
				err = errs.NewErrFailedToRollbackTx(err, e, panicked)
			}
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(ctx, tx)
	panicked = false
	return err
}

// Wait 等数据库真正可用，用在数据库和应用一起启动的场景，例如容器里的集成测试
func (db *DB) Wait() error {
	err := db.db.Ping()
	for err == driver.ErrBadConn {
		log.Println("等待数据库启动...")
		time.Sleep(time.Second)
		err = db.db.Ping()
	}
	return err
}

func (db *DB) Close() error {
	if db.stmts != nil {
		// Purge 会触发淘汰回调，关闭全部缓存的语句
		db.stmts.Purge()
	}
	return db.db.Close()
}
