package sample

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"Matricola,genotype",
		"IT001,012",
		"IT002,205",
		"IT003,110",
	}, "\n") + "\n"

	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Records, 3)

	// Declared order is order of first appearance.
	assert.Equal(t, []string{"IT001", "IT002", "IT003"}, table.IDs())
	assert.Equal(t, "012", table.Records[0].Genotypes)
	assert.Equal(t, "205", table.Records[1].Genotypes)
}

func TestReadExtraColumns(t *testing.T) {
	input := strings.Join([]string{
		"breed,Matricola,genotype",
		"holstein,IT001,0125",
	}, "\n")

	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "IT001", table.Records[0].ID)
	assert.Equal(t, "0125", table.Records[0].Genotypes)
}

func TestReadSemicolonDelimited(t *testing.T) {
	input := "Matricola;genotype\nIT001;012\n"

	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "012", table.Records[0].Genotypes)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"missing columns", "id,gt\nIT001,012\n", "header must declare"},
		{"duplicate sample id", "Matricola,genotype\nIT001,012\nIT001,210\n", "duplicate sample id"},
		{"missing sample id", "Matricola,genotype\n,012\n", "missing sample id"},
		{"short row", "Matricola,genotype\nIT001\n", "expected at least"},
		{"no samples", "Matricola,genotype\n", "no samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Message, tt.wantMsg)
		})
	}
}

func TestValidate(t *testing.T) {
	table := &Table{Records: []Record{
		{ID: "IT001", Genotypes: "012"},
		{ID: "IT002", Genotypes: "01"},
	}}

	require.NoError(t, (&Table{Records: table.Records[:1]}).Validate(3))

	err := table.Validate(3)
	require.Error(t, err)

	var mismatch *LengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "IT002", mismatch.Sample)
	assert.Equal(t, 2, mismatch.Got)
	assert.Equal(t, 3, mismatch.Want)
}
