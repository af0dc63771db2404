// Package strand resolves Illumina marker alleles onto the customer strand.
//
// Illumina manifests report each marker's allele pair in the orientation of
// the ILMN strand. Downstream pipelines expect alleles on the customer
// strand. When the two designators differ, each base is complemented
// independently; positional order is never changed.
package strand

import (
	"fmt"
	"strings"
)

// Strand designators as they appear in Illumina manifests.
// Manifests abbreviate these as "T" and "B".
const (
	Top = "TOP"
	Bot = "BOT"
)

// InvalidAlleleError reports an allele pair that is not exactly two
// bases from {A, C, G, T}.
type InvalidAlleleError struct {
	Pair string
}

func (e *InvalidAlleleError) Error() string {
	return fmt.Sprintf("invalid allele pair %q: want exactly two bases from A, C, G, T", e.Pair)
}

// InvalidStrandError reports a strand designator outside {TOP, BOT}.
type InvalidStrandError struct {
	Strand string
}

func (e *InvalidStrandError) Error() string {
	return fmt.Sprintf("invalid strand designator %q: want TOP or BOT", e.Strand)
}

// Complement returns the base-pairing partner of b (A<->T, C<->G).
func Complement(b byte) (byte, error) {
	switch b {
	case 'A':
		return 'T', nil
	case 'T':
		return 'A', nil
	case 'C':
		return 'G', nil
	case 'G':
		return 'C', nil
	default:
		return 0, &InvalidAlleleError{Pair: string(b)}
	}
}

// IsBase reports whether b is one of the four DNA bases.
func IsBase(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// Normalize canonicalizes a strand designator, accepting the abbreviated
// forms "T" and "B" used in some manifest exports.
func Normalize(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TOP", "T":
		return Top, nil
	case "BOT", "BOTTOM", "B":
		return Bot, nil
	default:
		return "", &InvalidStrandError{Strand: s}
	}
}

// Resolve maps a marker's two-letter allele pair, reported on ilmnStrand,
// onto customerStrand. Matching strands pass the pair through; differing
// strands complement each base. Order is preserved in both cases: the
// first base becomes REF, the second ALT. A pair with two identical bases
// violates the bi-allelic assumption and is rejected.
func Resolve(pair, ilmnStrand, customerStrand string) (ref, alt byte, err error) {
	if len(pair) != 2 || !IsBase(pair[0]) || !IsBase(pair[1]) {
		return 0, 0, &InvalidAlleleError{Pair: pair}
	}
	if pair[0] == pair[1] {
		return 0, 0, &InvalidAlleleError{Pair: pair}
	}

	is, err := Normalize(ilmnStrand)
	if err != nil {
		return 0, 0, err
	}
	cs, err := Normalize(customerStrand)
	if err != nil {
		return 0, 0, err
	}

	if is == cs {
		return pair[0], pair[1], nil
	}

	ref, err = Complement(pair[0])
	if err != nil {
		return 0, 0, err
	}
	alt, err = Complement(pair[1])
	if err != nil {
		return 0, 0, err
	}
	return ref, alt, nil
}
