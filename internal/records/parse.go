package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxInputSize bounds how much input Parse reads.
const DefaultMaxInputSize = 32 << 20

// Sentinel errors returned by Parse.
var (
	ErrNotText       = errors.New("input is not a text file")
	ErrNoHeader      = errors.New("input has no header row")
	ErrMalformed     = errors.New("malformed CSV")
	ErrInputTooLarge = errors.New("input exceeds maximum size")
	ErrDecode        = errors.New("cannot decode input")
)

// Warning kinds reported by Parse.
const (
	WarnRaggedRow       = "ragged-row"
	WarnDuplicateHeader = "duplicate-header"
	WarnEmptyHeader     = "empty-header"
)

// candidates are tried in this order when sniffing; the first wins a tie.
var candidates = []rune{',', ';', '\t', '|'}

// ParseOptions configures Parse.
type ParseOptions struct {
	// Delimiter separates fields. Zero detects it from the header row.
	Delimiter rune
	// MaxSize limits input bytes. Zero uses DefaultMaxInputSize.
	MaxSize int64
}

// ParseWarning describes a recoverable oddity in the input.
type ParseWarning struct {
	Kind    string
	Line    int
	Message string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Parse reads a header row and the data rows that follow. Rows may have fewer
// or more fields than the header; missing fields are absent from the record
// and extra fields are dropped, each with a warning. Values are not trimmed.
func Parse(r io.Reader, opts ParseOptions) ([]Record, []ParseWarning, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxInputSize
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	if int64(len(raw)) > maxSize {
		return nil, nil, fmt.Errorf("%w: limit %d bytes", ErrInputTooLarge, maxSize)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, ErrNoHeader
	}
	if !isText(raw) {
		return nil, nil, fmt.Errorf("%w: detected %s", ErrNotText, mimetype.Detect(raw).String())
	}

	data, err := decode(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = SniffDelimiter(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	headerLine, _ := reader.FieldPos(0)
	columns, warnings := readHeader(header, headerLine)
	if len(columns) == 0 {
		return nil, warnings, ErrNoHeader
	}

	var out []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		line, _ := reader.FieldPos(0)
		if len(row) != len(header) {
			warnings = append(warnings, ParseWarning{
				Kind:    WarnRaggedRow,
				Line:    line,
				Message: fmt.Sprintf("row has %d fields, header has %d", len(row), len(header)),
			})
		}

		fields := make(map[string]string, len(columns))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			if !columns[i] {
				continue
			}
			fields[strings.TrimSpace(name)] = row[i]
		}

		out = append(out, Record{Position: len(out) + 1, Line: line, fields: fields})
	}

	return out, warnings, nil
}

// readHeader marks which header positions are used. The first occurrence of a
// name wins; empty names are ignored.
func readHeader(header []string, line int) (map[int]bool, []ParseWarning) {
	used := make(map[int]bool, len(header))
	seen := make(map[string]bool, len(header))
	var warnings []ParseWarning

	for i, name := range header {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			warnings = append(warnings, ParseWarning{
				Kind:    WarnEmptyHeader,
				Line:    line,
				Message: fmt.Sprintf("column %d has no name and is ignored", i+1),
			})
		case seen[name]:
			warnings = append(warnings, ParseWarning{
				Kind:    WarnDuplicateHeader,
				Line:    line,
				Message: fmt.Sprintf("column %d repeats %q and is ignored", i+1, name),
			})
		default:
			seen[name] = true
			used[i] = true
		}
	}
	return used, warnings
}

// isText reports whether the detected type descends from text/plain.
func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// decode converts UTF-16 input with a byte order mark to UTF-8 and strips a
// UTF-8 BOM. Invalid UTF-8 sequences become U+FFFD.
func decode(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	return out, err
}

// SniffDelimiter picks the candidate delimiter that occurs most often outside
// quotes on the first line. It returns ',' when none occurs.
func SniffDelimiter(data []byte) rune {
	counts := make(map[rune]int, len(candidates))
	inQuotes := false
	for _, r := range string(data) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes && (r == '\n' || r == '\r') {
			break
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, c := range candidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}
