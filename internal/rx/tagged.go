package rx

import "github.com/jeongseonghan/ofdm80211/internal/ofdm"

// Tag marks a position of interest in the received stream. Tags are the
// only signaling between stages besides the sample values themselves.
type Tag int

const (
	TagNone         Tag = iota
	TagSTSStart         // approximate start of the short training sequence
	TagSTSEnd           // approximate end of the short training sequence
	TagLTSStart         // first symbol assembled from the long training sequence
	TagLTS1             // framing point of the first LTS symbol
	TagLTS2             // framing point of the second LTS symbol
	TagStartOfFrame     // the SIGNAL symbol
)

var tagNames = [...]string{"none", "sts_start", "sts_end", "lts_start", "lts1", "lts2", "start_of_frame"}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "invalid"
	}
	return tagNames[t]
}

// Sample is one complex baseband sample with a tag.
type Sample struct {
	Sample complex128
	Tag    Tag
}

// Symbol is one 64-subcarrier OFDM symbol with a tag.
type Symbol struct {
	Samples [ofdm.FFTSize]complex128
	Tag     Tag
}

// DataSymbol is one OFDM symbol reduced to its 48 data subcarriers.
type DataSymbol struct {
	Samples [ofdm.DataSubcarriers]complex128
	Tag     Tag
}
