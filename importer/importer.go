// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/models"
	"github.com/danielhkuo/term-mapper/store"
)

var (
	ErrMissingColumn = errors.New("import file is missing a required column")
	ErrUndecodable   = errors.New("import file could not be decoded with any known encoding")
)

// Importer loads (category, term) pairs from the configured file.
type Importer struct {
	store *store.Store
	cfg   config.DataImportConfig
}

func New(st *store.Store, cfg config.DataImportConfig) *Importer {
	return &Importer{store: st, cfg: cfg}
}

// ImportIfEmpty runs Import only when the terms table is empty. A missing
// import file is logged and reported as an empty result.
func (im *Importer) ImportIfEmpty(ctx context.Context) (*models.ImportResult, error) {
	n, err := im.store.CountTerms(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		slog.Debug("terms already present, skipping import", "count", n)
		return &models.ImportResult{}, nil
	}

	result, err := im.Import(ctx)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("import file not found", "path", im.cfg.CSVPath)
		return &models.ImportResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("imported terms",
		"path", im.cfg.CSVPath,
		"encoding", result.Encoding,
		"rows", result.TotalProcessed,
		"created", result.Created,
		"skipped", result.Skipped)
	return result, nil
}

// Import reads every row of the import file and inserts its terms.
// Rows with a blank category or term and duplicate pairs are skipped.
func (im *Importer) Import(ctx context.Context) (*models.ImportResult, error) {
	var (
		rows     [][]string
		encoding string
		err      error
	)

	switch strings.ToLower(filepath.Ext(im.cfg.CSVPath)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(im.cfg.CSVPath, im.cfg.Sheet)
		encoding = "xlsx"
	default:
		rows, encoding, err = readCSV(im.cfg.CSVPath, im.cfg.Encoding, im.cfg.DelimiterRune())
	}
	if err != nil {
		return nil, err
	}

	return im.insertRows(ctx, rows, encoding)
}

func (im *Importer) insertRows(ctx context.Context, rows [][]string, encoding string) (*models.ImportResult, error) {
	result := &models.ImportResult{Encoding: encoding}
	if len(rows) == 0 {
		return result, nil
	}

	catIdx, termIdx, err := headerIndexes(rows[0], im.cfg.CategoryColumn, im.cfg.TermColumn)
	if err != nil {
		return nil, err
	}

	for _, row := range rows[1:] {
		result.TotalProcessed++

		category := cell(row, catIdx)
		term := cell(row, termIdx)
		if category == "" || term == "" {
			result.Skipped++
			continue
		}

		inserted, err := im.store.InsertTerm(ctx, category, term)
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

func headerIndexes(header []string, categoryCol, termCol string) (catIdx, termIdx int, err error) {
	catIdx, termIdx = -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case categoryCol:
			if catIdx < 0 {
				catIdx = i
			}
		case termCol:
			if termIdx < 0 {
				termIdx = i
			}
		}
	}

	if catIdx < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrMissingColumn, categoryCol)
	}
	if termIdx < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrMissingColumn, termCol)
	}
	return catIdx, termIdx, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
