package legal

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Row is one entry of the legal register workbook: a law name, the region
// it applies to, and where to read it.
type Row struct {
	Region string `json:"region"`
	URL    string `json:"url"`
	Name   string `json:"name"`
}

// Register reads the legal workbook and caches its rows, reloading when the
// file's modification time changes. A missing or unreadable workbook is an
// empty register, not a failure.
type Register struct {
	path   string
	logger zerolog.Logger

	mu     sync.Mutex
	rows   []Row
	mtime  time.Time
	loaded bool
}

func NewRegister(path string, logger zerolog.Logger) *Register {
	return &Register{path: path, logger: logger}
}

// Rows returns the current register contents.
func (r *Register) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(r.path)
	if err != nil {
		if !r.loaded {
			r.logger.Warn().Str("path", r.path).Msg("legal register workbook missing")
			r.rows = nil
			r.loaded = true
		}
		return r.rows
	}

	if !r.loaded || !info.ModTime().Equal(r.mtime) {
		rows, err := loadWorkbook(r.path)
		if err != nil {
			r.logger.Error().Err(err).Str("path", r.path).Msg("legal register workbook unreadable")
			rows = nil
		}
		r.rows = rows
		r.mtime = info.ModTime()
		r.loaded = true
		r.logger.Info().Int("rows", len(rows)).Msg("legal register loaded")
	}
	return r.rows
}

// loadWorkbook reads the first sheet, skipping the header row. Columns are
// region, url, law name; fully blank rows are dropped.
func loadWorkbook(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, cells := range raw {
		if i == 0 {
			continue
		}
		row := Row{
			Region: cellText(cells, 0),
			URL:    cellText(cells, 1),
			Name:   cellText(cells, 2),
		}
		if row.Region == "" && row.URL == "" && row.Name == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellText(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
