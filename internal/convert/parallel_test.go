package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmozafari/illumina2vcf/internal/output"
)

func TestOrderedCollectReordersResults(t *testing.T) {
	results := make(chan workResult, 8)
	for _, seq := range []int{3, 0, 2, 1, 5, 4} {
		results <- workResult{Seq: seq, Record: output.Record{Pos: int64(seq)}}
	}
	close(results)

	var got []int
	err := orderedCollect(results, func(r workResult) error {
		got = append(got, r.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

func TestOrderedCollectStopsOnError(t *testing.T) {
	results := make(chan workResult, 4)
	for seq := 0; seq < 4; seq++ {
		results <- workResult{Seq: seq}
	}
	close(results)

	wantErr := errors.New("write failed")
	calls := 0
	err := orderedCollect(results, func(r workResult) error {
		calls++
		if r.Seq == 1 {
			return wantErr
		}
		return nil
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, calls)
}

func TestDecodeParallelRendersAllSamples(t *testing.T) {
	conv := New(Options{Workers: 2})

	items := make(chan workItem, 2)
	items <- workItem{Seq: 0, Marker: ResolvedMarker{Chrom: "1", Pos: 10, Name: "SNP-A", Ref: 'A', Alt: 'G'}, Col: 0}
	items <- workItem{Seq: 1, Marker: ResolvedMarker{Chrom: "1", Pos: 20, Name: "SNP-B", Ref: 'T', Alt: 'C'}, Col: 1}
	close(items)

	records := testTable().Records // codes: "0105", "1220", "2-12"
	results := conv.decodeParallel(items, records)

	bySeq := make(map[int]workResult)
	for r := range results {
		bySeq[r.Seq] = r
	}
	require.Len(t, bySeq, 2)

	assert.Equal(t, []string{"A/A", "A/G", "G/G"}, bySeq[0].Genotypes)
	assert.Equal(t, []string{"T/C", "C/C", "./."}, bySeq[1].Genotypes)
	assert.Equal(t, "SNP-A", bySeq[0].Record.ID)
}
