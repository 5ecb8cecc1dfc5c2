package wifi

import "github.com/jeongseonghan/ofdm80211/internal/fec"

// Rate enumerates the eleven PHY data rates, named by coding rate then
// modulation. Rate 1/2 with 64-QAM is not a valid 802.11a combination.
type Rate int

const (
	Rate12BPSK Rate = iota
	Rate23BPSK
	Rate34BPSK
	Rate12QPSK
	Rate23QPSK
	Rate34QPSK
	Rate12QAM16
	Rate23QAM16
	Rate34QAM16
	Rate23QAM64
	Rate34QAM64

	NumRates = int(Rate34QAM64) + 1
)

// RateParams carries the per-rate constants needed to encode and decode a
// PPDU at that rate.
type RateParams struct {
	Rate      Rate
	RateField byte         // 4-bit SIGNAL rate code
	CBPS      int          // coded bits per symbol
	DBPS      int          // data bits per symbol
	BPSC      int          // bits per subcarrier
	Coding    fec.CodeRate // coding rate of the punctured code
	Name      string
}

var rateTable = [NumRates]RateParams{
	{Rate12BPSK, 0xD, 48, 24, 1, fec.CodeRate12, "1/2 BPSK"},
	{Rate23BPSK, 0xE, 48, 32, 1, fec.CodeRate23, "2/3 BPSK"},
	{Rate34BPSK, 0xF, 48, 36, 1, fec.CodeRate34, "3/4 BPSK"},
	{Rate12QPSK, 0x5, 96, 48, 2, fec.CodeRate12, "1/2 QPSK"},
	{Rate23QPSK, 0x6, 96, 64, 2, fec.CodeRate23, "2/3 QPSK"},
	{Rate34QPSK, 0x7, 96, 72, 2, fec.CodeRate34, "3/4 QPSK"},
	{Rate12QAM16, 0x9, 192, 96, 4, fec.CodeRate12, "1/2 QAM16"},
	{Rate23QAM16, 0xA, 192, 128, 4, fec.CodeRate23, "2/3 QAM16"},
	{Rate34QAM16, 0xB, 192, 144, 4, fec.CodeRate34, "3/4 QAM16"},
	{Rate23QAM64, 0x1, 288, 192, 6, fec.CodeRate23, "2/3 QAM64"},
	{Rate34QAM64, 0x3, 288, 216, 6, fec.CodeRate34, "3/4 QAM64"},
}

// Params returns the parameters for the rate.
func (r Rate) Params() RateParams {
	return rateTable[r]
}

// String returns the display name of the rate.
func (r Rate) String() string {
	if r < 0 || int(r) >= NumRates {
		return "unknown"
	}
	return rateTable[r].Name
}

// FromRateField looks up rate parameters by the 4-bit SIGNAL rate code.
// ok is false for codes that do not name a valid rate.
func FromRateField(field byte) (RateParams, bool) {
	for _, rp := range rateTable {
		if rp.RateField == field {
			return rp, true
		}
	}
	return RateParams{}, false
}

// NumSymbols returns the number of DATA OFDM symbols needed for a payload of
// length bytes: 16 SERVICE bits, the payload, 4 CRC bytes and 6 tail bits,
// rounded up to whole symbols.
func NumSymbols(length, dbps int) int {
	bits := 16 + 8*(length+4) + 6
	return (bits + dbps - 1) / dbps
}
