// core/pepprop/pepprop.go
package pepprop

// PropertySet holds the sequence-derived physicochemical properties the
// scorer consumes. NetCharge and AvgHydrophobicity are signed; the
// composite formula uses their magnitudes only.
type PropertySet struct {
	NetCharge         float64
	AvgHydrophobicity float64
	Length            int
}

// Func computes properties for one peptide sequence. The scorer takes the
// calculator as a function value so alternative models can be injected.
type Func func(seq string) PropertySet

// Kyte–Doolittle hydropathy scale, one entry per standard residue.
var hydropathy = map[byte]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// Side-chain charge contributions at physiological pH. Histidine carries a
// small partial positive charge.
var charge = map[byte]float64{
	'K': 1, 'R': 1, 'H': 0.1, 'D': -1, 'E': -1,
}

// Compute derives NetCharge, AvgHydrophobicity and Length from seq.
// Residues are matched case-insensitively. Unknown residues contribute
// zero to both sums but still count toward the length (the reader does not
// validate the alphabet, so neither does the calculator).
func Compute(seq string) PropertySet {
	p := PropertySet{Length: len(seq)}
	if len(seq) == 0 {
		return p
	}
	var hydroSum float64
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		p.NetCharge += charge[c]
		hydroSum += hydropathy[c]
	}
	p.AvgHydrophobicity = hydroSum / float64(len(seq))
	return p
}
