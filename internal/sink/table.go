package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"account-analyze-go/internal/model"
)

// dialect 不同数据库的SQL差异
type dialect struct {
	name        string
	placeholder func(n int) string
}

var (
	sqliteDialect = dialect{
		name:        "sqlite",
		placeholder: func(int) string { return "?" },
	}
	postgresDialect = dialect{
		name:        "postgres",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// columnTypes 与 model.RecordColumns 一一对应
var columnTypes = []string{"TEXT", "INTEGER", "TEXT", "INTEGER", "INTEGER", "INTEGER"}

// sqlTable 只追加的结果表
type sqlTable struct {
	db      *sql.DB
	table   string
	dialect dialect
}

func (t *sqlTable) createTableSQL() string {
	cols := make([]string, len(model.RecordColumns))
	for i, c := range model.RecordColumns {
		cols[i] = fmt.Sprintf("%q %s", c, columnTypes[i])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", t.table, strings.Join(cols, ", "))
}

func (t *sqlTable) insertSQL() string {
	cols := make([]string, len(model.RecordColumns))
	args := make([]string, len(model.RecordColumns))
	for i, c := range model.RecordColumns {
		cols[i] = fmt.Sprintf("%q", c)
		args[i] = t.dialect.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)", t.table, strings.Join(cols, ", "), strings.Join(args, ", "))
}

// Write 表不存在时建表，然后在一个事务内追加全部记录
func (t *sqlTable) Write(ctx context.Context, records []model.AnalysisRecord) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, t.createTableSQL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", t.table, err)
	}

	if len(records) > 0 {
		stmt, err := tx.PrepareContext(ctx, t.insertSQL())
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.ExecContext(ctx, r.Username, r.FraudScore, string(r.Category), r.Posts, r.Followers, r.Following); err != nil {
				return fmt.Errorf("failed to insert %s: %w", r.Username, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (t *sqlTable) Close() error {
	return t.db.Close()
}
