package zipcode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Record parser for delimited zip code lines, e.g.
//
//	Worcester,01602
//
// Only the city and zip columns are read, anything else on the line is
// ignored. Quoting follows encoding/csv so a city containing the delimiter can
// be written as "Manchester-by-the-Sea, MA",01944.
//
// ParseLine never logs and never exits, callers decide what a failure means.

var (
	// ErrMissingFields is returned when a line has fewer columns than the layout needs.
	ErrMissingFields = errors.New("missing required zip code fields")
	// ErrEmptyField is returned when the city or zip column is blank after trimming.
	ErrEmptyField = errors.New("empty zip code field")
	// ErrInvalidLayout indicates a ParserConfig that can never match a line.
	ErrInvalidLayout = errors.New("invalid zip code column layout")
)

// ParseError reports a line that could not be turned into a ZipRecord.
type ParseError struct {
	Line int    // 1-based, 0 when unknown
	Text string // raw line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("parse %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Validate checks that the layout is usable.
func (cfg ParserConfig) Validate() error {
	if cfg.CityColumn < 0 || cfg.ZipColumn < 0 {
		return fmt.Errorf("%w: negative column", ErrInvalidLayout)
	}
	if cfg.CityColumn == cfg.ZipColumn {
		return fmt.Errorf("%w: city and zip share column %d", ErrInvalidLayout, cfg.CityColumn)
	}
	d := cfg.delimiter()
	if d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError || !utf8.ValidRune(d) {
		return fmt.Errorf("%w: delimiter %q", ErrInvalidLayout, d)
	}
	return nil
}

func (cfg ParserConfig) delimiter() rune {
	if cfg.Delimiter == 0 {
		return ','
	}
	return cfg.Delimiter
}

// ParseLine converts one terminator free line into a ZipRecord.
func ParseLine(line string, cfg ParserConfig) (ZipRecord, error) {
	fields, err := splitFields(line, cfg.delimiter())
	if err != nil {
		return ZipRecord{}, &ParseError{Text: line, Err: err}
	}

	rec, err := extractZipRecord(fields, cfg)
	if err != nil {
		return ZipRecord{}, &ParseError{Text: line, Err: err}
	}
	return rec, nil
}

func splitFields(line string, delimiter rune) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // column count is checked against the layout instead
	// O"Neil Park is a city name, not a broken record
	reader.LazyQuotes = true

	fields, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// blank line
			return nil, ErrMissingFields
		}
		return nil, err
	}
	if len(fields) > 0 {
		fields[0] = stripBOM(fields[0])
	}
	return fields, nil
}

// extractZipRecord picks the configured columns out of a split line.
func extractZipRecord(fields []string, cfg ParserConfig) (ZipRecord, error) {
	need := max(cfg.CityColumn, cfg.ZipColumn) + 1
	if len(fields) < need {
		return ZipRecord{}, fmt.Errorf("%w: got %d columns, need %d", ErrMissingFields, len(fields), need)
	}

	city := strings.TrimSpace(fields[cfg.CityColumn])
	if city == "" {
		return ZipRecord{}, fmt.Errorf("%w: city", ErrEmptyField)
	}

	zip := strings.TrimSpace(fields[cfg.ZipColumn])
	if zip == "" {
		return ZipRecord{}, fmt.Errorf("%w: zip", ErrEmptyField)
	}

	return ZipRecord{
		City: city,
		Zip:  zip,
	}, nil
}

// stripBOM removes a leading UTF-8 BOM from a string (first cell safety).
func stripBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return s[3:]
	}
	return s
}
