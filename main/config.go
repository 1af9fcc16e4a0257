package main

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const cfgFile = ".redfile-reader.yaml"

// FileConfig holds defaults read from a YAML file. Command-line flags win
// over it whenever they differ from their built-in defaults.
type FileConfig struct {
	File              string `yaml:"file"`
	ValuesPerDataPage *int   `yaml:"values-per-data-page"`
	OutputPageHeader  bool   `yaml:"output-page-header"`
	OutputToCSV       bool   `yaml:"output-to-csv"`
	Delimiter         string `yaml:"delimiter"`
	LogLevel          string `yaml:"log-level"`
}

// LoadConfig returns the contents of configPath, or of ~/.redfile-reader.yaml
// when configPath is empty. A missing file yields nil.
func LoadConfig(configPath string) []byte {
	var path string
	if len(configPath) > 0 {
		path = configPath
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(homeDir, cfgFile)
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	return file
}

func ParseConfig(file []byte) (*FileConfig, error) {
	if len(file) == 0 {
		return nil, nil
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeConf(fileConf *FileConfig, resConfig *Config) {
	if len(resConfig.File) == 0 {
		resConfig.File = fileConf.File
	}
	if resConfig.ValuesPerDataPage == defaultValuesPerDataPage && fileConf.ValuesPerDataPage != nil {
		resConfig.ValuesPerDataPage = strconv.Itoa(*fileConf.ValuesPerDataPage)
	}
	if !resConfig.OutputPageHeader {
		resConfig.OutputPageHeader = fileConf.OutputPageHeader
	}
	if !resConfig.OutputToCSV {
		resConfig.OutputToCSV = fileConf.OutputToCSV
	}
	if resConfig.Delimiter == defaultDelimiter && len(fileConf.Delimiter) > 0 {
		resConfig.Delimiter = fileConf.Delimiter
	}
	if resConfig.LogLevel == defaultLogLevel && len(fileConf.LogLevel) > 0 {
		resConfig.LogLevel = fileConf.LogLevel
	}
}
