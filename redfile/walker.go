package redfile

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Reader walks a RED1 container held in memory.
//
// A Reader holds no per-parse state and may be reused; each Read builds its
// own ParseContext.
type Reader struct {
	decoder           MessageDecoder
	logger            *zap.Logger
	report            *Reporter
	valuesPerDataPage int
	pageHeaders       bool
	rowOutput         bool
}

type Option func(*Reader)

func WithDecoder(dec MessageDecoder) Option {
	return func(r *Reader) { r.decoder = dec }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// WithDiagnostics sets the writer receiving the diagnostic stream.
func WithDiagnostics(w io.Writer) Option {
	return func(r *Reader) { r.report = NewReporter(w) }
}

// WithValuesPerDataPage limits the values decoded from each data page. A
// negative n decodes all of them. The limit is ignored in row output mode.
func WithValuesPerDataPage(n int) Option {
	return func(r *Reader) { r.valuesPerDataPage = n }
}

// WithPageHeaders writes every page header to the diagnostic stream.
func WithPageHeaders(enabled bool) Option {
	return func(r *Reader) { r.pageHeaders = enabled }
}

// WithRowOutput assembles decoded values into rows instead of writing them to
// the diagnostic stream. Row assembly needs every value of every page, so it
// forces an unlimited values-per-page setting.
func WithRowOutput(enabled bool) Option {
	return func(r *Reader) { r.rowOutput = enabled }
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{
		decoder:           NewCompactDecoder(),
		logger:            zap.NewNop(),
		report:            NewReporter(nil),
		valuesPerDataPage: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of a successful Read.
type Result struct {
	Container *Container
	Stats     Stats
	// Rows holds one entry per logical row in row output mode, nil otherwise.
	Rows [][]string
}

// Read validates data as a RED1 container and walks every page of every
// column chunk. Any format violation or unsupported type stops the walk.
func (r *Reader) Read(ctx context.Context, data []byte) (*Result, error) {
	c, err := LocateContainer(data, r.decoder)
	if err != nil {
		return nil, err
	}
	r.report.Layout(c)
	r.report.Metadata(c.Metadata)

	pc := newParseContext(c.Len(), r.valuesPerDataPage, r.rowOutput, r.report)
	pc.Stats.MetadataLength = c.MetadataLength

	for i := range c.Metadata.RowGroups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.walkRowGroup(pc, c, i); err != nil {
			return nil, err
		}
	}

	r.logger.Info("read container",
		zap.Int64("fileLength", pc.Stats.FileLength),
		zap.Int("rowGroups", pc.Stats.RowGroups),
		zap.Int64("rows", pc.Stats.Rows),
		zap.Int("pagesRead", pc.Stats.PagesRead),
		zap.Int("pagesSkipped", pc.Stats.PagesSkipped))

	return &Result{Container: c, Stats: pc.Stats, Rows: pc.Rows}, nil
}

func (r *Reader) walkRowGroup(pc *ParseContext, c *Container, i int) error {
	rg := &c.Metadata.RowGroups[i]
	r.report.RowGroup(i)
	r.logger.Debug("reading row group",
		zap.Int("rowGroup", i),
		zap.Int("columns", len(rg.Columns)),
		zap.Int64("numRows", rg.NumRows))

	pc.beginRowGroup(rg)
	for j := range rg.Columns {
		r.report.Column(j)
		pc.beginColumn()
		if err := r.walkColumnChunk(pc, c, i, j); err != nil {
			return err
		}
	}
	return nil
}

// walkColumnChunk decodes the pages in [data_page_offset, file_offset). Each
// page starts where the previous one ended, so the pages must cover the range
// exactly.
func (r *Reader) walkColumnChunk(pc *ParseContext, c *Container, rowGroup, column int) error {
	col := &c.Metadata.RowGroups[rowGroup].Columns[column]
	meta := col.MetaData
	start, end := meta.DataPageOffset, col.FileOffset

	fail := func(offset int64, err error) error {
		return &ChunkError{RowGroup: rowGroup, Column: column, Offset: offset, Err: err}
	}

	chunk, err := c.region(start, end)
	if err != nil {
		return fail(start, err)
	}
	r.logger.Debug("reading column chunk",
		zap.Int("rowGroup", rowGroup),
		zap.Int("column", column),
		zap.Stringer("type", meta.Type),
		zap.Int64("start", start),
		zap.Int64("end", end))

	var cursor int64
	for cursor < int64(len(chunk)) {
		remain := chunk[cursor:]
		header, n, err := decodePageHeader(r.decoder, remain, len(remain))
		if err != nil {
			return fail(start+cursor, err)
		}
		if r.pageHeaders {
			r.report.PageHeader(header)
		}
		cursor += int64(n)
		pc.addPageHeader(n)

		size := int64(header.CompressedPageSize)
		if cursor+size > int64(len(chunk)) {
			return fail(start+cursor, fmt.Errorf("%w: page body of %d bytes ends at %d, past the chunk end %d",
				ErrChunkRange, size, start+cursor+size, end))
		}
		body := chunk[cursor : cursor+size : cursor+size]
		pc.addPageBody(column, size)

		if !header.isPlainDataPage() {
			pc.skipPage()
			r.logger.Debug("skipping page",
				zap.Int("rowGroup", rowGroup),
				zap.Int("column", column),
				zap.Int64("offset", start+cursor),
				zap.Stringer("pageType", header.Type),
				zap.Int32("size", header.CompressedPageSize))
			cursor += size
			continue
		}

		numValues := int(header.DataPageHeader.NumValues)
		values, err := DecodePage(body, numValues, meta.Type, pc.Limit())
		if err != nil {
			return fail(start+cursor, err)
		}
		if err := pc.addDataPage(column, numValues, values); err != nil {
			return fail(start+cursor, err)
		}
		cursor += size
	}

	if start+cursor != end {
		return fail(start+cursor, fmt.Errorf("%w: pages end at %d, chunk ends at %d", ErrChunkRange, start+cursor, end))
	}
	return nil
}
