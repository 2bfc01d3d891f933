// Package ledger persists the expense ledger as a flat CSV file. The
// whole file is read and rewritten on every interaction; there is no
// append-only mode, no locking across processes and no atomicity
// guarantee. That is acceptable only because the system is single-user
// and single-process.
package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"billscan/internal/core"
	applog "billscan/internal/log"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var header = []string{"Date", "Category", "Amount"}

// Store reads and overwrites the backing CSV file in full. Load of a
// missing file yields an empty ledger, not an error.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *applog.Logger
}

func NewStore(path string, logger *applog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.WithComponent(applog.ComponentLedger).With(applog.FieldLedgerPath, path),
	}
}

// Load reads the whole backing file into memory. Categories are not
// re-validated here: a file edited out-of-band can carry values outside
// the closed set and the system will not detect it.
func (s *Store) Load(ctx context.Context) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (core.Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.DebugContext(ctx, "Backing file missing, starting empty")
		return core.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(header)
	reader.ReuseRecord = true

	// Skip the header line.
	if _, err := reader.Read(); err == io.EOF {
		return core.Ledger{}, nil
	} else if err != nil {
		return nil, csvReadError(reader, err)
	}

	var l core.Ledger
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvReadError(reader, err)
		}

		date, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return nil, csvReadError(reader, fmt.Errorf("could not parse date: %w", err))
		}
		amount, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, csvReadError(reader, fmt.Errorf("could not parse amount: %w", err))
		}

		l = append(l, core.Record{
			Date:     date,
			Category: core.Category(record[1]),
			Amount:   amount,
		})
	}

	s.logger.DebugContext(ctx, "Ledger loaded", applog.FieldRecords, len(l))
	return l, nil
}

// Save overwrites the backing file with the full ledger. Saving an
// unmodified, just-loaded ledger reproduces the file byte for byte.
func (s *Store) Save(ctx context.Context, l core.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, l)
}

func (s *Store) save(ctx context.Context, l core.Ledger) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, r := range l {
		row := []string{
			r.Date.Format(dateLayout),
			string(r.Category),
			core.FormatAmount(r.Amount),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush ledger file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger file: %w", err)
	}

	s.logger.DebugContext(ctx, "Ledger saved", applog.FieldRecords, len(l))
	return nil
}

// Append loads the current ledger, adds the record and writes the whole
// file back. It returns the new record count.
func (s *Store) Append(ctx context.Context, r core.Record) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	l = l.Append(r)
	if err := s.save(ctx, l); err != nil {
		return 0, err
	}
	return len(l), nil
}

// csvReadError annotates a parse error with the line it occurred on.
func csvReadError(r *csv.Reader, err error) error {
	line, _ := r.FieldPos(0)
	return fmt.Errorf("error in line %d of the ledger file: %w", line, err)
}
