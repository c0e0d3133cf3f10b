package sink

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresTable PostgreSQL结果表（可选的镜像目标）
type PostgresTable struct {
	sqlTable
}

// NewPostgresTable 连接PostgreSQL
func NewPostgresTable(databaseURL, table string) (*PostgresTable, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresTableFromDB(db, table), nil
}

// NewPostgresTableFromDB 使用已有连接
func NewPostgresTableFromDB(db *sql.DB, table string) *PostgresTable {
	return &PostgresTable{sqlTable: sqlTable{db: db, table: table, dialect: postgresDialect}}
}

// Name 目标名
func (p *PostgresTable) Name() string {
	return "postgres:" + p.table
}
