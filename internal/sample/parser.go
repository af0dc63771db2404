package sample

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Genotype table column names.
const (
	ColSampleID = "Matricola"
	ColGenotype = "genotype"
)

// ReadFile reads a genotype table from a file, gzipped or plain.
func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genotype file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		return nil, fmt.Errorf("read genotype file header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seek genotype file: %w", err)
	}

	var r io.Reader = file
	if buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return Read(r)
}

// Read reads a genotype table from r. The header must declare the sample
// id and genotype columns; additional columns are ignored. Sample order is
// the order ids first appear; duplicate ids are rejected.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	lineNumber := 0

	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		lineNumber++
		return strings.TrimRight(line, "\r\n"), nil
	}

	header, err := readLine()
	if err != nil {
		return nil, fmt.Errorf("read genotype table header: %w", err)
	}

	delimiter := ","
	for _, d := range []string{";", "\t"} {
		if strings.Contains(header, d) {
			delimiter = d
			break
		}
	}

	idCol, gtCol := -1, -1
	for i, col := range strings.Split(header, delimiter) {
		switch strings.TrimSpace(col) {
		case ColSampleID:
			idCol = i
		case ColGenotype:
			gtCol = i
		}
	}
	if idCol < 0 || gtCol < 0 {
		return nil, &ParseError{
			Line:    lineNumber,
			Message: fmt.Sprintf("header must declare %q and %q columns", ColSampleID, ColGenotype),
		}
	}

	t := &Table{}
	seen := make(map[string]bool)

	for {
		line, err := readLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read genotype table line: %w", err)
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, delimiter)
		if idCol >= len(fields) || gtCol >= len(fields) {
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("expected at least %d columns, found %d", max(idCol, gtCol)+1, len(fields)),
			}
		}

		id := strings.TrimSpace(fields[idCol])
		if id == "" {
			return nil, &ParseError{
				Line:    lineNumber,
				Message: "missing sample id",
			}
		}
		if seen[id] {
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("duplicate sample id %q", id),
			}
		}
		seen[id] = true

		t.Records = append(t.Records, Record{
			ID:        id,
			Genotypes: strings.TrimSpace(fields[gtCol]),
		})
	}

	if len(t.Records) == 0 {
		return nil, &ParseError{
			Line:    lineNumber,
			Message: "genotype table has no samples",
		}
	}

	return t, nil
}

// ParseError represents an error during genotype table parsing with line
// context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("genotype table parse error at line %d: %s", e.Line, e.Message)
}
