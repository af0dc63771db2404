package duckdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmozafari/illumina2vcf/internal/marker"
)

func testMarkers() []marker.Definition {
	return []marker.Definition{
		{ID: 1, Name: "ARS-BFGL-NGS-100024", Chromosome: "1", Position: 10775, GenTrainScore: "0.8015", SNP: "TC", IlmnStrand: "B", CustomerStrand: "T", NormID: "2"},
		{ID: 2, Name: "ARS-BFGL-NGS-100026", Chromosome: "3", Position: 1192818, GenTrainScore: "0.7836", SNP: "AG", IlmnStrand: "T", CustomerStrand: "B", NormID: "2"},
		{ID: 3, Name: "SNP-SAME", Chromosome: "7", Position: 99, SNP: "GT", IlmnStrand: "TOP", CustomerStrand: "TOP"},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.InsertMarkers(testMarkers()))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	defs, err := s.LoadMarkers()
	require.NoError(t, err)
	assert.Equal(t, testMarkers(), defs)
}

func TestStorePreservesInsertOrderAcrossBatches(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	all := testMarkers()
	require.NoError(t, s.InsertMarkers(all[:2]))
	require.NoError(t, s.InsertMarkers(all[2:]))

	defs, err := s.LoadMarkers()
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "ARS-BFGL-NGS-100024", defs[0].Name)
	assert.Equal(t, "SNP-SAME", defs[2].Name)
}

func TestStoreOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.InsertMarkers(testMarkers()))
	require.NoError(t, s.Close())

	// Reopen and read back.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	defs, err := s.LoadMarkers()
	require.NoError(t, err)
	assert.Len(t, defs, 3)
}

func TestIsStorePath(t *testing.T) {
	assert.True(t, IsStorePath("markers.duckdb"))
	assert.True(t, IsStorePath("markers.db"))
	assert.False(t, IsStorePath("markers.csv"))
	assert.False(t, IsStorePath("markers.csv.gz"))
}
