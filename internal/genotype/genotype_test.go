package genotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		code byte
		want Call
	}{
		{'0', HomRef},
		{'1', Het},
		{'2', HomAlt},
		{'5', NoCall},
		{'-', NoCall},
		// Reserved or stray digits decode to no-call, never to an error.
		{'3', NoCall},
		{'4', NoCall},
		{'9', NoCall},
		{' ', NoCall},
		{'A', NoCall},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.code))
		})
	}
}

func TestAlleles(t *testing.T) {
	tests := []struct {
		name  string
		call  Call
		want1 byte
		want2 byte
	}{
		{"hom-ref", HomRef, 'A', 'A'},
		{"het", Het, 'A', 'G'},
		{"hom-alt", HomAlt, 'G', 'G'},
		{"no-call", NoCall, Missing, Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a1, a2 := tt.call.Alleles('A', 'G')
			assert.Equal(t, tt.want1, a1)
			assert.Equal(t, tt.want2, a2)
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		call   Call
		phased bool
		want   string
	}{
		{"hom-ref unphased", HomRef, false, "A/A"},
		{"het unphased", Het, false, "A/G"},
		{"hom-alt unphased", HomAlt, false, "G/G"},
		{"no-call unphased", NoCall, false, "./."},
		{"hom-ref phased", HomRef, true, "A|A"},
		{"het phased", Het, true, "A|G"},
		{"hom-alt phased", HomAlt, true, "G|G"},
		{"no-call phased", NoCall, true, ".|."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.call.Render('A', 'G', tt.phased))
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	// For any ref/alt pair, the 0/1/2 codes map onto (R,R), (R,A), (A,A).
	ref, alt := byte('T'), byte('C')

	a1, a2 := Decode('0').Alleles(ref, alt)
	assert.Equal(t, [2]byte{ref, ref}, [2]byte{a1, a2})

	a1, a2 = Decode('1').Alleles(ref, alt)
	assert.Equal(t, [2]byte{ref, alt}, [2]byte{a1, a2})

	a1, a2 = Decode('2').Alleles(ref, alt)
	assert.Equal(t, [2]byte{alt, alt}, [2]byte{a1, a2})

	assert.Equal(t, NoCall, Decode('5'))
}
