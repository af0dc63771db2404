package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, []string{"IT001", "IT002"}, HeaderOptions{
		Source:    "illumina2vcf 1.0.0",
		Reference: "UMD3.1",
	})

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, "##fileformat=VCFv4.2", lines[0])
	assert.Equal(t, "##source=illumina2vcf 1.0.0", lines[1])
	assert.Equal(t, "##reference=UMD3.1", lines[2])
	assert.Contains(t, lines[3], "FILTER=<ID=PASS")
	assert.Contains(t, lines[4], "FILTER=<ID=LowQual")
	assert.Contains(t, lines[5], "FORMAT=<ID=GT")
	assert.Equal(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tIT001\tIT002", lines[6])
}

func TestWriteHeaderWithoutReference(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil, HeaderOptions{})

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "##source=illumina2vcf\n")
	assert.NotContains(t, out, "##reference=")
}

func TestWriteRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, []string{"IT001", "IT002", "IT003"}, HeaderOptions{})

	rec := Record{Chrom: "1", Pos: 10775, ID: "ARS-BFGL-NGS-100024", Ref: 'A', Alt: 'G'}
	require.NoError(t, w.WriteRecord(rec, []string{"A/A", "A/G", "G/G"}))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"1\t10775\tARS-BFGL-NGS-100024\tA\tG\t.\tPASS\t.\tGT\tA/A\tA/G\tG/G\n",
		buf.String())
}

func TestWriteRecordFieldCountMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, []string{"IT001", "IT002"}, HeaderOptions{})

	rec := Record{Chrom: "1", Pos: 100, ID: "SNP-A", Ref: 'A', Alt: 'G'}
	err := w.WriteRecord(rec, []string{"A/A", "A/G", "G/G"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SNP-A")
	assert.Contains(t, err.Error(), "3 genotype fields for 2 declared samples")
}
