// Package genotype decodes compact per-marker genotype codes into diploid calls.
package genotype

// Missing is the VCF symbol for a missing allele.
const Missing = '.'

// Call is the decoded diploid state for one sample at one marker.
type Call int

const (
	// NoCall means no confident genotype was determined.
	NoCall Call = iota
	// HomRef is homozygous for the reference allele.
	HomRef
	// Het is heterozygous, displayed as (ref, alt).
	Het
	// HomAlt is homozygous for the alternate allele.
	HomAlt
)

// Decode maps a single genotype code byte to a Call.
//
// '0', '1' and '2' are the defined codes. Everything else — '5' and '-'
// in observed exports, plus any digit this encoding family reserves for
// future use — decodes to NoCall rather than failing, so one bad cell
// never aborts a whole conversion run.
func Decode(code byte) Call {
	switch code {
	case '0':
		return HomRef
	case '1':
		return Het
	case '2':
		return HomAlt
	default:
		return NoCall
	}
}

// Alleles returns the explicit allele pair for the call given the marker's
// resolved REF and ALT. A no-call returns the missing symbol for both.
func (c Call) Alleles(ref, alt byte) (byte, byte) {
	switch c {
	case HomRef:
		return ref, ref
	case Het:
		return ref, alt
	case HomAlt:
		return alt, alt
	default:
		return Missing, Missing
	}
}

// Render formats the call as a VCF GT field. The separator is '|' for a
// phased run and '/' for an unphased one; a run uses one separator
// throughout, including for no-calls.
func (c Call) Render(ref, alt byte, phased bool) string {
	sep := byte('/')
	if phased {
		sep = '|'
	}
	a1, a2 := c.Alleles(ref, alt)
	return string([]byte{a1, sep, a2})
}

// String returns the call name for logging.
func (c Call) String() string {
	switch c {
	case HomRef:
		return "hom-ref"
	case Het:
		return "het"
	case HomAlt:
		return "hom-alt"
	default:
		return "no-call"
	}
}
