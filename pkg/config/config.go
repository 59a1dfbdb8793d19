package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/matst80/zip-finder/pkg/zipcode"
)

const (
	EnvDelimiter   = "ZIPFINDER_DELIMITER"
	EnvCityColumn  = "ZIPFINDER_CITY_COLUMN"
	EnvZipColumn   = "ZIPFINDER_ZIP_COLUMN"
	EnvHeader      = "ZIPFINDER_HEADER"
	EnvOutput      = "ZIPFINDER_OUTPUT"
	EnvLogLevel    = "ZIPFINDER_LOG_LEVEL"
	EnvLogFormat   = "ZIPFINDER_LOG_FORMAT"
	EnvMetricsAddr = "ZIPFINDER_METRICS_ADDR"
)

type Config struct {
	Delimiter   string
	CityColumn  int
	ZipColumn   int
	Header      bool
	Output      string
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

func Default() Config {
	return Config{
		Delimiter:  ",",
		CityColumn: 0,
		ZipColumn:  1,
		Header:     false,
		Output:     "text",
		LogLevel:   "warn",
		LogFormat:  "console",
	}
}

// LoadDotEnv reads a .env file into the environment if one exists. Values
// already set in the environment win.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// FromEnv overrides defaults with any ZIPFINDER_* variables that are set.
// Values that do not parse leave the default in place.
func FromEnv(defaults Config) Config {
	applyString := func(curr *string, env string) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*curr = v
		}
	}
	applyInt := func(curr *int, env string) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				*curr = n
			}
		}
	}
	applyBool := func(curr *bool, env string) {
		if v := os.Getenv(env); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*curr = b
			}
		}
	}

	applyString(&defaults.Delimiter, EnvDelimiter)
	applyInt(&defaults.CityColumn, EnvCityColumn)
	applyInt(&defaults.ZipColumn, EnvZipColumn)
	applyBool(&defaults.Header, EnvHeader)
	applyString(&defaults.Output, EnvOutput)
	applyString(&defaults.LogLevel, EnvLogLevel)
	applyString(&defaults.LogFormat, EnvLogFormat)
	applyString(&defaults.MetricsAddr, EnvMetricsAddr)
	return defaults
}

// LoaderConfig builds the zip code loader settings. The delimiter may be a
// single character or one of "tab", "\t", "semicolon", "pipe".
func (c Config) LoaderConfig() (zipcode.LoaderConfig, error) {
	delim, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return zipcode.LoaderConfig{}, err
	}
	cfg := zipcode.LoaderConfig{
		Parser: zipcode.ParserConfig{
			Delimiter:  delim,
			CityColumn: c.CityColumn,
			ZipColumn:  c.ZipColumn,
		},
		SkipHeader: c.Header,
	}
	if err := cfg.Parser.Validate(); err != nil {
		return zipcode.LoaderConfig{}, err
	}
	return cfg, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
