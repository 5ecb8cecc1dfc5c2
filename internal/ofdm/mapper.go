package ofdm

// Subcarrier layout of one 802.11a symbol in centered order: 48 data
// subcarriers, 4 pilots and 12 nulls (DC plus the guard bands).

const (
	// DataSubcarriers is the number of data-bearing subcarriers per symbol.
	DataSubcarriers = 48

	// PilotCount is the number of pilot subcarriers per symbol.
	PilotCount = 4
)

const (
	subNull  = 0
	subData  = 1
	subPilot = 2
)

// activeMap marks each of the 64 subcarrier slots as null, data or pilot.
var activeMap = [FFTSize]byte{
	0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1,
	0, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0,
}

// PilotIndices are the pilot slots (subcarriers -21, -7, 7, 21).
var PilotIndices = [PilotCount]int{11, 25, 39, 53}

// PilotValues are the BPSK pilot references before polarity; the fourth
// pilot is inverted.
var PilotValues = [PilotCount]complex128{1, 1, 1, -1}

// Polarity is the pilot polarity sequence. The SIGNAL symbol's pilots are
// multiplied by Polarity[0], the next symbol's by Polarity[1], and so on,
// wrapping after 127 symbols.
var Polarity = [127]float64{
	1, 1, 1, 1, -1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
	-1, -1, 1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1,
	1, 1, -1, 1, 1, -1, -1, 1, 1, 1, -1, 1, -1, -1, -1, 1,
	-1, 1, -1, -1, 1, -1, -1, 1, 1, 1, 1, 1, -1, -1, 1, 1,
	-1, -1, 1, -1, 1, -1, 1, 1, -1, -1, -1, 1, 1, -1, -1, -1,
	-1, 1, -1, -1, 1, -1, 1, 1, 1, 1, -1, 1, -1, 1, -1, 1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1, 1, 1, 1, -1,
	-1, 1, -1, -1, -1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1,
}

// DataIndices lists the 48 data slots in ascending order.
var DataIndices [DataSubcarriers]int

func init() {
	n := 0
	for i, kind := range activeMap {
		if kind == subData {
			DataIndices[n] = i
			n++
		}
	}
}

// Map spreads modulated data samples onto OFDM symbols, inserting pilots
// (with the polarity of each symbol's position in the frame, starting at 0
// for the SIGNAL symbol) and nulls. len(data) must be a multiple of 48; the
// output holds 64 samples per symbol in centered order.
func Map(data []complex128) []complex128 {
	numSymbols := len(data) / DataSubcarriers
	out := make([]complex128, 0, numSymbols*FFTSize)

	in := 0
	for sym := 0; sym < numSymbols; sym++ {
		pol := complex(Polarity[sym%len(Polarity)], 0)
		pilot := 0
		for _, kind := range activeMap {
			switch kind {
			case subData:
				out = append(out, data[in])
				in++
			case subPilot:
				out = append(out, PilotValues[pilot]*pol)
				pilot++
			default:
				out = append(out, 0)
			}
		}
	}
	return out
}

// Demap extracts the 48 data samples of each 64-sample symbol, discarding
// pilots and nulls. len(samples) must be a multiple of 64.
func Demap(samples []complex128) []complex128 {
	out := make([]complex128, 0, len(samples)/FFTSize*DataSubcarriers)
	for x, s := range samples {
		if activeMap[x%FFTSize] == subData {
			out = append(out, s)
		}
	}
	return out
}
