package sink

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteTable SQLite结果表
type SQLiteTable struct {
	sqlTable
	path string
}

// NewSQLiteTable 打开SQLite数据库（文件不存在时自动创建）
func NewSQLiteTable(path, table string) (*SQLiteTable, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &SQLiteTable{
		sqlTable: sqlTable{db: db, table: table, dialect: sqliteDialect},
		path:     path,
	}, nil
}

// Name 目标名
func (s *SQLiteTable) Name() string {
	return fmt.Sprintf("sqlite:%s/%s", s.path, s.table)
}
