package convert

import (
	"runtime"
	"sync"

	"github.com/rmozafari/illumina2vcf/internal/genotype"
	"github.com/rmozafari/illumina2vcf/internal/output"
	"github.com/rmozafari/illumina2vcf/internal/sample"
)

// workItem holds one resolved marker ready for decoding.
type workItem struct {
	Seq    int
	Marker ResolvedMarker
	Col    int // column in each sample's genotype code string
}

// workResult holds the rendered VCF fields for one marker.
type workResult struct {
	Seq       int
	Record    output.Record
	Genotypes []string
}

func workerCount(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// decodeParallel decodes markers across samples using a pool of workers.
// Each worker reads only immutable marker and sample data, so no locking
// is needed. Results arrive in completion order; use orderedCollect to
// consume them in sequence-number (manifest) order.
func (c *Converter) decodeParallel(items <-chan workItem, records []sample.Record) <-chan workResult {
	workers := workerCount(c.opts.Workers)
	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for item := range items {
				m := item.Marker
				genotypes := make([]string, len(records))
				for i, r := range records {
					call := genotype.Decode(r.Genotypes[item.Col])
					genotypes[i] = call.Render(m.Ref, m.Alt, c.opts.Phased)
				}
				results <- workResult{
					Seq: item.Seq,
					Record: output.Record{
						Chrom: m.Chrom,
						Pos:   m.Pos,
						ID:    m.Name,
						Ref:   m.Ref,
						Alt:   m.Alt,
					},
					Genotypes: genotypes,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results in a pending map and emits them as soon as
// the next expected sequence number is available. Blocks until the
// results channel is closed.
func orderedCollect(results <-chan workResult, fn func(workResult) error) error {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
