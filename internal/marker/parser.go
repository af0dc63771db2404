package marker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Manifest column names.
const (
	ColID             = "ID"
	ColName           = "Name"
	ColChromosome     = "Chromosome"
	ColPosition       = "Position"
	ColGenTrainScore  = "GenTrain_Score"
	ColSNP            = "SNP"
	ColIlmnStrand     = "ILMN_Strand"
	ColCustomerStrand = "Customer_Strand"
	ColNormID         = "NormID"
)

// columnIndices holds the positions of manifest columns in the header.
// -1 marks an optional column that is absent.
type columnIndices struct {
	id             int
	name           int
	chromosome     int
	position       int
	genTrainScore  int
	snp            int
	ilmnStrand     int
	customerStrand int
	normID         int
}

// Parser reads marker definitions from a delimited manifest file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	delimiter  string
	columns    columnIndices
	nextID     int
}

// NewParser creates a manifest parser for the given file.
// Supports plain and gzipped manifests; the field delimiter (';', ',' or
// tab) is sniffed from the header line.
func NewParser(path string) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open marker file: %w", err)
	}

	p := &Parser{file: file}

	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read marker file header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek marker file: %w", err)
	}

	// Gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a manifest parser from an io.Reader.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// sniffDelimiter picks the field delimiter from the header line.
// Illumina exports use ';', ',' or tab depending on the export tool.
func sniffDelimiter(header string) string {
	for _, d := range []string{";", "\t", ","} {
		if strings.Contains(header, d) {
			return d
		}
	}
	return ";"
}

// parseHeader reads the header line and resolves column indices.
func (p *Parser) parseHeader() error {
	line, err := p.readLine()
	if err != nil {
		return fmt.Errorf("read manifest header: %w", err)
	}

	p.delimiter = sniffDelimiter(line)

	p.columns = columnIndices{
		id:             -1,
		name:           -1,
		chromosome:     -1,
		position:       -1,
		genTrainScore:  -1,
		snp:            -1,
		ilmnStrand:     -1,
		customerStrand: -1,
		normID:         -1,
	}

	for i, col := range strings.Split(line, p.delimiter) {
		switch strings.TrimSpace(col) {
		case ColID:
			p.columns.id = i
		case ColName:
			p.columns.name = i
		case ColChromosome:
			p.columns.chromosome = i
		case ColPosition:
			p.columns.position = i
		case ColGenTrainScore:
			p.columns.genTrainScore = i
		case ColSNP:
			p.columns.snp = i
		case ColIlmnStrand:
			p.columns.ilmnStrand = i
		case ColCustomerStrand:
			p.columns.customerStrand = i
		case ColNormID:
			p.columns.normID = i
		}
	}

	required := map[string]int{
		ColName:           p.columns.name,
		ColChromosome:     p.columns.chromosome,
		ColPosition:       p.columns.position,
		ColSNP:            p.columns.snp,
		ColIlmnStrand:     p.columns.ilmnStrand,
		ColCustomerStrand: p.columns.customerStrand,
	}
	for name, idx := range required {
		if idx < 0 {
			return &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("missing required column %q", name),
			}
		}
	}

	return nil
}

// readLine reads the next line, trimming the trailing newline.
func (p *Parser) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	p.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// Next reads the next marker definition.
// Returns nil, nil when there are no more rows.
func (p *Parser) Next() (*Definition, error) {
	line, err := p.readLine()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest line: %w", err)
	}
	if line == "" {
		return p.Next() // Skip empty lines
	}

	return p.parseLine(line)
}

// parseLine parses a single manifest row into a Definition.
func (p *Parser) parseLine(line string) (*Definition, error) {
	fields := strings.Split(line, p.delimiter)

	get := func(idx int) string {
		if idx < 0 || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	posField := get(p.columns.position)
	pos, err := strconv.ParseInt(posField, 10, 64)
	if err != nil || pos < 0 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %q", posField),
		}
	}

	d := &Definition{
		Name:           get(p.columns.name),
		Chromosome:     get(p.columns.chromosome),
		Position:       pos,
		GenTrainScore:  get(p.columns.genTrainScore),
		SNP:            get(p.columns.snp),
		IlmnStrand:     get(p.columns.ilmnStrand),
		CustomerStrand: get(p.columns.customerStrand),
		NormID:         get(p.columns.normID),
	}

	if d.Name == "" {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: "missing marker name",
		}
	}

	if idField := get(p.columns.id); idField != "" {
		id, err := strconv.Atoi(idField)
		if err != nil {
			return nil, &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("invalid marker id: %q", idField),
			}
		}
		d.ID = id
	} else {
		d.ID = p.nextID
	}
	p.nextID++

	return d, nil
}

// ReadAll reads every remaining marker definition in input order.
func (p *Parser) ReadAll() ([]Definition, error) {
	var defs []Definition
	for {
		d, err := p.Next()
		if err != nil {
			return nil, err
		}
		if d == nil {
			return defs, nil
		}
		defs = append(defs, *d)
	}
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during manifest parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("marker manifest parse error at line %d: %s", e.Line, e.Message)
}
