package rx

import "github.com/jeongseonghan/ofdm80211/internal/ofdm"

// ChannelEstimator derives a per-subcarrier equalizer from the two long
// training symbols and applies it to every following symbol. The estimate
// is the inverse channel, averaged over both LTS symbols, so equalization
// is a single complex multiply per subcarrier. The first symbol after the
// training sequence is the SIGNAL symbol and is tagged START_OF_FRAME.
type ChannelEstimator struct {
	in  []Symbol
	out []Symbol

	chanEst    [ofdm.FFTSize]complex128
	ltsCount   int
	frameStart bool
}

// NewChannelEstimator creates a channel estimation stage.
func NewChannelEstimator() *ChannelEstimator {
	return &ChannelEstimator{}
}

// Name implements Block.
func (c *ChannelEstimator) Name() string { return "channel_est" }

// Work implements Block.
func (c *ChannelEstimator) Work() {
	c.out = c.out[:0]
	if len(c.in) == 0 {
		return
	}

	for i := range c.in {
		sym := &c.in[i]

		if sym.Tag == TagLTSStart {
			c.ltsCount = 1
			for j := range c.chanEst {
				c.chanEst[j] = 0
			}
		}

		if c.ltsCount > 0 {
			// Accumulate half the inverse channel from each LTS symbol.
			for j := 0; j < ofdm.FFTSize; j++ {
				ref := ofdm.LTSFrequency[j]
				if ref == 0 {
					continue
				}
				c.chanEst[j] += ref / sym.Samples[j] / 2
			}

			c.ltsCount++
			if c.ltsCount == 3 {
				c.ltsCount = 0
				c.frameStart = true
			}
			continue
		}

		var out Symbol
		if c.frameStart {
			out.Tag = TagStartOfFrame
			c.frameStart = false
		}
		for j := 0; j < ofdm.FFTSize; j++ {
			out.Samples[j] = c.chanEst[j] * sym.Samples[j]
		}
		c.out = append(c.out, out)
	}
}
