package fec

// CodeRate identifies the effective coding rate after puncturing the
// rate-1/2 mother code.
type CodeRate int

const (
	CodeRate12 CodeRate = iota // no puncturing
	CodeRate23                 // drop b2 of every (a1 b1 a2 b2)
	CodeRate34                 // drop a2, a3 of every (a1 b1 a2 b2 a3 b3)
)

// String returns the conventional name of the coding rate.
func (r CodeRate) String() string {
	switch r {
	case CodeRate12:
		return "1/2"
	case CodeRate23:
		return "2/3"
	case CodeRate34:
		return "3/4"
	default:
		return "unknown"
	}
}

// KeptFraction returns the fraction of mother-code bits that survive
// puncturing at this rate.
func (r CodeRate) KeptFraction() float64 {
	switch r {
	case CodeRate23:
		return 3.0 / 4.0
	case CodeRate34:
		return 2.0 / 3.0
	default:
		return 1.0
	}
}

// Puncture removes coded bits: for 2/3 the pattern of 802.11a Table 82
// (b2 dropped), for 3/4 a2 and a3 of every six bits are dropped, which is
// not the 3/4 pattern of 802.11a. len(data) must be a multiple of the
// pattern period (4 for 2/3, 6 for 3/4).
func Puncture(data []byte, rate CodeRate) []byte {
	switch rate {
	case CodeRate34:
		out := make([]byte, 0, len(data)*2/3)
		for x := 0; x+6 <= len(data); x += 6 {
			out = append(out, data[x], data[x+1], data[x+3], data[x+5])
		}
		return out

	case CodeRate23:
		out := make([]byte, 0, len(data)*3/4)
		for x := 0; x+4 <= len(data); x += 4 {
			out = append(out, data[x], data[x+1], data[x+2])
		}
		return out

	default:
		return data
	}
}

// Depuncture reinserts the punctured positions as NeutralSoft so the
// Viterbi decoder treats them as erasures.
func Depuncture(data []byte, rate CodeRate) []byte {
	switch rate {
	case CodeRate34:
		out := make([]byte, 0, len(data)*3/2)
		for x := 0; x+4 <= len(data); x += 4 {
			out = append(out, data[x], data[x+1], NeutralSoft, data[x+2], NeutralSoft, data[x+3])
		}
		return out

	case CodeRate23:
		out := make([]byte, 0, len(data)*4/3)
		for x := 0; x+3 <= len(data); x += 3 {
			out = append(out, data[x], data[x+1], data[x+2], NeutralSoft)
		}
		return out

	default:
		return data
	}
}
