package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"account-analyze-go/internal/model"
)

// CSVFile 结果CSV文件，每次写入覆盖原内容
type CSVFile struct {
	path string
}

// NewCSVFile 创建CSV目标
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// Name 目标名
func (c *CSVFile) Name() string {
	return "csv:" + c.path
}

// Write 写临时文件后rename整体替换目标文件
func (c *CSVFile) Write(ctx context.Context, records []model.AnalysisRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".account_analysis-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(model.RecordColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row for %s: %w", r.Username, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", c.path, err)
	}
	return nil
}
