package redfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// Reporter writes the human readable diagnostic stream: container layout,
// decoded metadata, page headers, per-value lines and the final summary.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

func (r *Reporter) Layout(c *Container) {
	fmt.Fprintf(r.w, "File Length: %d\n", c.Len())
	fmt.Fprintf(r.w, "Metadata offset: %d\n", c.MetadataOffset)
}

// Metadata renders the decoded FileMetaData as a tree.
func (r *Reporter) Metadata(meta *FileMetaData) {
	list := pterm.LeveledList{
		{Level: 0, Text: fmt.Sprintf("version: %d", meta.Version)},
		{Level: 0, Text: fmt.Sprintf("num_rows: %d", meta.NumRows)},
	}
	if meta.CreatedBy != "" {
		list = append(list, pterm.LeveledListItem{Level: 0, Text: "created_by: " + meta.CreatedBy})
	}

	list = append(list, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("schema (%d)", len(meta.Schema))})
	for _, se := range meta.Schema {
		list = append(list, pterm.LeveledListItem{Level: 1, Text: schemaElementString(se)})
	}

	list = append(list, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("row_groups (%d)", len(meta.RowGroups))})
	for i, rg := range meta.RowGroups {
		list = append(list, pterm.LeveledListItem{Level: 1,
			Text: fmt.Sprintf("%d: num_rows=%d total_byte_size=%d", i, rg.NumRows, rg.TotalByteSize)})
		for j, col := range rg.Columns {
			list = append(list, pterm.LeveledListItem{Level: 2, Text: columnChunkString(j, col)})
		}
	}

	for _, kv := range meta.KeyValueMetadata {
		list = append(list, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("%s=%s", kv.Key, kv.Value)})
	}

	root := putils.TreeFromLeveledList(list)
	root.Text = "FileMetaData"
	r.render(pterm.DefaultTree.WithRoot(root).Srender())
}

func (r *Reporter) PageHeader(h *PageHeader) {
	fmt.Fprintln(r.w, h.String())
}

func (r *Reporter) RowGroup(i int) {
	fmt.Fprintf(r.w, "Reading row group %d\n", i)
}

func (r *Reporter) Column(c int) {
	fmt.Fprintf(r.w, "  Reading column %d\n", c)
}

func (r *Reporter) Value(v Value) {
	if v.IsNull() {
		fmt.Fprintln(r.w, "Value: NULL")
		return
	}
	fmt.Fprintf(r.w, "Value: %s\n", v)
}

// Summary renders the counters of a finished parse.
func (r *Reporter) Summary(s *Stats) {
	ratio := func(n int64) string {
		return strconv.FormatFloat(s.Ratio(n), 'f', 6, 64)
	}
	data := pterm.TableData{
		{"Summary", "Value", "Fraction of file"},
		{"Rows", strconv.FormatInt(s.Rows, 10), ""},
		{"Row groups", strconv.Itoa(s.RowGroups), ""},
		{"Read pages", strconv.Itoa(s.PagesRead), ""},
		{"Skipped pages", strconv.Itoa(s.PagesSkipped), ""},
		{"Metadata size", strconv.FormatInt(s.MetadataLength, 10), ratio(s.MetadataLength)},
		{"Total page header size", strconv.FormatInt(s.PageHeaderBytes, 10), ratio(s.PageHeaderBytes)},
		{"Column byte sizes", strconv.FormatInt(s.PageBodyBytes, 10), ratio(s.PageBodyBytes)},
	}
	for i, n := range s.ColumnBytes {
		data = append(data, []string{"  Col " + strconv.Itoa(i), strconv.FormatInt(n, 10), ratio(n)})
	}

	r.render(pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderRowSeparator("-").
		WithData(data).Srender())
}

func (r *Reporter) render(s string, err error) {
	if err != nil {
		fmt.Fprintf(r.w, "render: %v\n", err)
		return
	}
	fmt.Fprintln(r.w, strings.TrimRight(s, "\n"))
}

func schemaElementString(se SchemaElement) string {
	var b strings.Builder
	b.WriteString(se.Name)
	if se.Type != nil {
		fmt.Fprintf(&b, " type=%s", *se.Type)
	}
	if se.RepetitionType != nil {
		fmt.Fprintf(&b, " repetition=%s", *se.RepetitionType)
	}
	if se.NumChildren != nil {
		fmt.Fprintf(&b, " num_children=%d", *se.NumChildren)
	}
	return b.String()
}

func columnChunkString(i int, col ColumnChunk) string {
	md := col.MetaData
	return fmt.Sprintf("column %d: path=%s type=%s codec=%s num_values=%d data_page_offset=%d file_offset=%d",
		i, strings.Join(md.PathInSchema, "."), md.Type, md.Codec, md.NumValues, md.DataPageOffset, col.FileOffset)
}
