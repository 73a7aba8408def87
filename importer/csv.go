// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// fallbackEncodings are tried in order after the configured encoding.
var fallbackEncodings = []string{"utf-8", "latin-1", "iso-8859-1", "cp1252"}

func readCSV(path, configured string, delimiter rune) ([][]string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read import file: %w", err)
	}

	text, used, err := decode(raw, configured)
	if err != nil {
		return nil, "", err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, used, nil
}

// decode tries the configured encoding first, then the fallbacks, and
// returns the text with any UTF-8 byte order mark removed.
func decode(raw []byte, configured string) (string, string, error) {
	tried := map[string]bool{}
	candidates := append([]string{configured}, fallbackEncodings...)

	for _, name := range candidates {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || tried[key] {
			continue
		}
		tried[key] = true

		text, ok := decodeAs(raw, key)
		if ok {
			return text, key, nil
		}
	}
	return "", "", ErrUndecodable
}

func decodeAs(raw []byte, name string) (string, bool) {
	if isUTF8(name) {
		if !utf8.Valid(raw) {
			return "", false
		}
		out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		return string(out), true
	}

	enc := lookupEncoding(name)
	if enc == nil {
		return "", false
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(bytes.TrimPrefix(out, []byte("\ufeff"))), true
}

func isUTF8(name string) bool {
	switch name {
	case "utf-8", "utf8", "utf-8-sig":
		return true
	}
	return false
}

func lookupEncoding(name string) encoding.Encoding {
	switch name {
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1
	case "cp1252", "windows-1252":
		return charmap.Windows1252
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil
	}
	return enc
}
