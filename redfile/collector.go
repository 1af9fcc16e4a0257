package redfile

import (
	"fmt"
	"slices"
)

// Stats are the running counters of one parse.
type Stats struct {
	FileLength     int64
	MetadataLength int64

	RowGroups    int
	PagesRead    int
	PagesSkipped int
	// Rows counts the values of every data page of column 0.
	Rows int64

	PageHeaderBytes int64
	// PageBodyBytes and ColumnBytes count the bodies of all pages, skipped
	// ones included.
	PageBodyBytes int64
	ColumnBytes   []int64
}

// Ratio returns n as a fraction of the file length.
func (s *Stats) Ratio(n int64) float64 {
	if s.FileLength == 0 {
		return 0
	}
	return float64(n) / float64(s.FileLength)
}

// ParseContext carries the mutable state of a single Read call through the
// walker and the page decoder.
type ParseContext struct {
	Stats Stats
	// Rows is only populated in row output mode.
	Rows [][]string

	collectRows bool
	limit       int
	report      *Reporter

	rowGroupBase int
	rowCursor    int
}

func newParseContext(fileLength int64, limit int, collectRows bool, report *Reporter) *ParseContext {
	if collectRows {
		limit = -1
	}
	return &ParseContext{
		Stats:       Stats{FileLength: fileLength},
		collectRows: collectRows,
		limit:       limit,
		report:      report,
	}
}

// Limit is the number of values decoded per data page, or -1 for all.
func (pc *ParseContext) Limit() int { return pc.limit }

func (pc *ParseContext) beginRowGroup(rg *RowGroup) {
	pc.Stats.RowGroups++
	if n := len(rg.Columns); n > len(pc.Stats.ColumnBytes) {
		pc.Stats.ColumnBytes = append(pc.Stats.ColumnBytes, make([]int64, n-len(pc.Stats.ColumnBytes))...)
	}
	pc.rowGroupBase = len(pc.Rows)
	if pc.collectRows && rg.NumRows > 0 {
		pc.Rows = slices.Grow(pc.Rows, int(rg.NumRows))
	}
}

func (pc *ParseContext) beginColumn() {
	pc.rowCursor = pc.rowGroupBase
}

func (pc *ParseContext) addPageHeader(n int) {
	pc.Stats.PageHeaderBytes += int64(n)
}

func (pc *ParseContext) addPageBody(column int, size int64) {
	pc.Stats.PageBodyBytes += size
	pc.Stats.ColumnBytes[column] += size
}

func (pc *ParseContext) skipPage() {
	pc.Stats.PagesSkipped++
}

// addDataPage records the decoded values of one data page. Column 0 defines
// the rows of the row group; the n-th value of any column lands in the row
// at the column's running cursor plus n.
func (pc *ParseContext) addDataPage(column int, numValues int, values []Value) error {
	pc.Stats.PagesRead++
	if column == 0 {
		pc.Stats.Rows += int64(numValues)
	}

	if !pc.collectRows {
		for _, v := range values {
			pc.report.Value(v)
		}
		pc.rowCursor += len(values)
		return nil
	}

	if column == 0 {
		pc.Rows = append(pc.Rows, make([][]string, len(values))...)
	}
	if end := pc.rowCursor + len(values); end > len(pc.Rows) {
		return fmt.Errorf("%w: column %d reaches row %d, the row group has %d rows",
			ErrRowCount, column, end-pc.rowGroupBase, len(pc.Rows)-pc.rowGroupBase)
	}
	for n, v := range values {
		row := pc.rowCursor + n
		pc.Rows[row] = append(pc.Rows[row], v.String())
	}
	pc.rowCursor += len(values)
	return nil
}
