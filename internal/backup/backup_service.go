package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"sort"
	"sync"
	"time"

	backuperrors "skillboard/internal/backup/errors"
	"skillboard/internal/employee"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// importConcurrency caps how many roster rows are upserted at once so a
// large import cannot exhaust the connection pool.
const importConcurrency = 4

// Directory is the slice of the employee service the backup module
// needs for the roster round trip.
type Directory interface {
	GetAll(ctx context.Context) ([]employee.EmployeeResponse, error)
	Upsert(ctx context.Context, empl employee.Employee) (employee.EmployeeResponse, error)
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportReport struct {
	Total    int        `json:"total"`
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
}

//go:generate mockgen -source=backup_service.go -destination=mock/backup_service_mock.go -package=mock
type Service interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, r io.Reader) (ImportReport, error)
}

type service struct {
	directory Directory
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(directory Directory, logger ...*zap.Logger) Service {
	l := zap.L().Named("backup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup.service")
	}
	return &service{
		directory: directory,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Export(ctx context.Context) ([]byte, error) {
	employees, err := s.directory.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Headers()); err != nil {
		return nil, err
	}
	for _, e := range employees {
		if err := w.Write(recordFromResponse(e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.logger.Info("roster export built", zap.Int("employees", len(employees)))
	return buf.Bytes(), nil
}

// Import upserts every row it can and reports the rest. One bad row
// never aborts the batch.
func (s *service) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows [][]string
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			s.logger.Warn("roster import malformed csv", zap.Int("line", line), zap.Error(err))
			return ImportReport{}, backuperrors.ErrMalformedCSV
		}
		if line == 1 && isHeaderRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return ImportReport{}, backuperrors.ErrEmptyImport
	}

	now := s.now()

	var (
		mu       sync.Mutex
		imported int
		rowErrs  []RowError
	)
	fail := func(row int, err error) {
		mu.Lock()
		rowErrs = append(rowErrs, RowError{Row: row, Message: err.Error()})
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for i, rec := range rows {
		row := i + 1
		rec := rec
		g.Go(func() error {
			empl, err := employeeFromRecord(rec, now)
			if err != nil {
				fail(row, err)
				return nil
			}
			if _, err := s.directory.Upsert(gctx, empl); err != nil {
				fail(row, err)
				return nil
			}
			mu.Lock()
			imported++
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sort.Slice(rowErrs, func(a, b int) bool { return rowErrs[a].Row < rowErrs[b].Row })

	report := ImportReport{
		Total:    len(rows),
		Imported: imported,
		Failed:   len(rowErrs),
		Errors:   rowErrs,
	}
	s.logger.Info("roster import finished",
		zap.Int("total", report.Total),
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
