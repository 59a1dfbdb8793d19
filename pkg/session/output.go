package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Result is the answer to one query line.
type Result struct {
	City  string   `json:"city"`
	Zips  []string `json:"zips"`
	Found bool     `json:"found"`
}

const prompt = "Enter a city to look up zip codes (Ctrl-D to exit):\n"

func writePrompt(w io.Writer, format Format) error {
	if format != FormatText {
		return nil
	}
	_, err := io.WriteString(w, prompt)
	return err
}

func writeResult(w io.Writer, format Format, res Result) error {
	if format == FormatJSON {
		b, err := sonic.Marshal(res)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	}

	if !res.Found {
		_, err := fmt.Fprintf(w, "No zip codes found for %s\n", res.City)
		return err
	}
	_, err := fmt.Fprintf(w, "Zip codes for %s: %s\n", res.City, strings.Join(res.Zips, " "))
	return err
}
