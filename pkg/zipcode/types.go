package zipcode

// ZipRecord associates one municipality with one zip code. Both fields are
// kept exactly as parsed (trimmed, no case folding) and the zip stays text
// so leading zeros survive.
type ZipRecord struct {
	City string `json:"city"`
	Zip  string `json:"zip"`
}

// ParserConfig describes the column layout of the input file.
type ParserConfig struct {
	// Field delimiter, defaults to ','.
	Delimiter rune

	// Zero based column positions of the required fields.
	CityColumn int
	ZipColumn  int
}

// DefaultParserConfig matches the "City,Zip" layout.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Delimiter:  ',',
		CityColumn: 0,
		ZipColumn:  1,
	}
}

// LoaderConfig controls how a whole input stream is read.
type LoaderConfig struct {
	Parser ParserConfig

	// If true the first line is treated as a header row and not parsed.
	SkipHeader bool
}

func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Parser:     DefaultParserConfig(),
		SkipHeader: false,
	}
}
