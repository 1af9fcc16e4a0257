package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"redfile_reader/redfile"
	rt "redfile_reader/redfile/redfiletest"
)

func testFile() []byte {
	return rt.MustBuild(rt.RowGroup{
		NumRows: 3,
		Columns: []rt.Column{
			{Name: "id", Type: redfile.Int64, Pages: []rt.Page{
				rt.PlainPage(3, rt.AllPresent(3), rt.Int64s(1, 2, 3)),
			}},
			{Name: "name", Type: redfile.ByteArray, Pages: []rt.Page{
				rt.PlainPage(3, rt.Bitmap(true, false, true), rt.ByteArrays("a", "b|c")),
			}},
		},
	})
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.red")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func defaultConfig() Config {
	return Config{
		ValuesPerDataPage: defaultValuesPerDataPage,
		Delimiter:         defaultDelimiter,
		LogLevel:          defaultLogLevel,
	}
}

func TestRunParserCSV(t *testing.T) {
	opts := options{
		file:              writeFile(t, testFile()),
		valuesPerDataPage: -1,
		outputToCSV:       true,
		delimiter:         '|',
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, runParser(context.Background(), opts, &stdout, &stderr, zaptest.NewLogger(t)))

	assert.Equal(t, "1|a\n2|\n3|\"b|c\"\n", stdout.String())
	assert.Contains(t, stderr.String(), "Skipped pages")
	assert.Contains(t, stderr.String(), "Col 1")
}

func TestWriteRowsQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, [][]string{
		{"plain", `a"b`},
		{" lead", "b|c"},
		{"", "two\nlines"},
	}, '|'))

	assert.Equal(t, "plain|\"a\"\"b\"\n\" lead\"|\"b|c\"\n|\"two\nlines\"\n", buf.String())
	assert.Contains(t, usage, "quoting fields that hold the delimiter")
}

func TestRunParserDiagnosticsOnly(t *testing.T) {
	opts := options{
		file:              writeFile(t, testFile()),
		valuesPerDataPage: 2,
		outputPageHeader:  true,
		delimiter:         '|',
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, runParser(context.Background(), opts, &stdout, &stderr, zaptest.NewLogger(t)))

	assert.Empty(t, stdout.String())
	out := stderr.String()
	assert.Contains(t, out, "Value: 2\n")
	assert.NotContains(t, out, "Value: 3\n")
	assert.Contains(t, out, "PageHeader(type=DATA_PAGE")
}

func TestRunParserCompressedInput(t *testing.T) {
	raw := testFile()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zstdData := enc.EncodeAll(raw, nil)
	require.NoError(t, enc.Close())

	var snappyData bytes.Buffer
	w := snappy.NewBufferedWriter(&snappyData)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for name, data := range map[string][]byte{"zstd": zstdData, "snappy": snappyData.Bytes()} {
		t.Run(name, func(t *testing.T) {
			out, err := decompressInput(data)
			require.NoError(t, err)
			assert.Equal(t, raw, out)

			opts := options{file: writeFile(t, data), valuesPerDataPage: -1, outputToCSV: true, delimiter: ','}
			var stdout bytes.Buffer
			require.NoError(t, runParser(context.Background(), opts, &stdout, &bytes.Buffer{}, zaptest.NewLogger(t)))
			assert.Equal(t, "1,a\n2,\n3,b|c\n", stdout.String())
		})
	}
}

func TestRunParserErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := runParser(context.Background(), options{file: filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "error opening file")

	bad := testFile()
	bad[len(bad)-2] = 0
	err = runParser(context.Background(), options{file: writeFile(t, bad), valuesPerDataPage: -1}, &stdout, &stderr, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, redfile.ErrInvalidMagic)
	assert.Empty(t, stdout.String())
}

func TestConfigOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.File = "f.red"
	cfg.ValuesPerDataPage = "5"
	cfg.Delimiter = "\t"
	cfg.LogLevel = "debug"

	opts, err := cfg.options()
	require.NoError(t, err)
	assert.Equal(t, "f.red", opts.file)
	assert.Equal(t, 5, opts.valuesPerDataPage)
	assert.Equal(t, '\t', opts.delimiter)
	assert.Equal(t, zapcore.DebugLevel, opts.logLevel)

	cfg.OutputToCSV = true
	opts, err = cfg.options()
	require.NoError(t, err)
	assert.Equal(t, -1, opts.valuesPerDataPage)
}

func TestConfigOptionsInvalid(t *testing.T) {
	tests := map[string]func(*Config){
		"values per page": func(c *Config) { c.ValuesPerDataPage = "many" },
		"empty delimiter": func(c *Config) { c.Delimiter = "" },
		"long delimiter":  func(c *Config) { c.Delimiter = "||" },
		"log level":       func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(&cfg)
			_, err := cfg.options()
			assert.Error(t, err)
		})
	}
}

func TestParseConfig(t *testing.T) {
	fileCfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, fileCfg)

	fileCfg, err = ParseConfig([]byte(`
file: /data/a.red
values-per-data-page: 0
output-page-header: true
delimiter: ","
log-level: warn
`))
	require.NoError(t, err)
	require.NotNil(t, fileCfg.ValuesPerDataPage)
	assert.Equal(t, 0, *fileCfg.ValuesPerDataPage)

	_, err = ParseConfig([]byte("file: [unterminated"))
	assert.Error(t, err)
}

func TestMergeConf(t *testing.T) {
	n := 10
	fileCfg := &FileConfig{
		File:              "/data/a.red",
		ValuesPerDataPage: &n,
		OutputPageHeader:  true,
		Delimiter:         ",",
		LogLevel:          "warn",
	}

	t.Run("file fills defaults", func(t *testing.T) {
		cfg := defaultConfig()
		mergeConf(fileCfg, &cfg)
		assert.Equal(t, "/data/a.red", cfg.File)
		assert.Equal(t, "10", cfg.ValuesPerDataPage)
		assert.True(t, cfg.OutputPageHeader)
		assert.False(t, cfg.OutputToCSV)
		assert.Equal(t, ",", cfg.Delimiter)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("flags win", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.File = "/tmp/b.red"
		cfg.ValuesPerDataPage = "3"
		cfg.Delimiter = ";"
		cfg.LogLevel = "error"
		mergeConf(fileCfg, &cfg)
		assert.Equal(t, "/tmp/b.red", cfg.File)
		assert.Equal(t, "3", cfg.ValuesPerDataPage)
		assert.Equal(t, ";", cfg.Delimiter)
		assert.Equal(t, "error", cfg.LogLevel)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: debug\n"), 0o644))
	assert.Equal(t, []byte("log-level: debug\n"), LoadConfig(path))

	assert.Nil(t, LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestDecompressInputPassthrough(t *testing.T) {
	raw := testFile()
	out, err := decompressInput(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	_, err = decompressInput(append([]byte{0x28, 0xb5, 0x2f, 0xfd}, "junk"...))
	assert.Error(t, err)
}
