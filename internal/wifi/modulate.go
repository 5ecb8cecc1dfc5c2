package wifi

// Modulate maps coded bits (one 0/1 byte per bit) onto constellation points
// for the modulation of the given rate. BPSK uses the I axis only; QPSK,
// 16-QAM and 64-QAM split their bits evenly across I and Q. Constellations
// are scaled to unit average symbol power.
func Modulate(data []byte, rate Rate) []complex128 {
	rp := rate.Params()

	if rp.BPSC == 1 {
		bpsk := newQAM(1, 1.0)
		out := make([]complex128, len(data))
		for x := range out {
			out[x] = complex(bpsk.encode(data[x:x+1]), 0)
		}
		return out
	}

	// QPSK and the QAMs: bpsc/2 bits per axis at half power each.
	axis := newQAM(rp.BPSC/2, 0.5)
	half := rp.BPSC / 2
	out := make([]complex128, len(data)/rp.BPSC)
	for x := range out {
		b := data[x*rp.BPSC:]
		out[x] = complex(axis.encode(b[:half]), axis.encode(b[half:rp.BPSC]))
	}
	return out
}

// Demodulate converts received constellation points into soft bits, bpsc
// per sample, in the same bit order Modulate consumes.
func Demodulate(samples []complex128, rate Rate) []byte {
	rp := rate.Params()
	out := make([]byte, len(samples)*rp.BPSC)

	if rp.BPSC == 1 {
		bpsk := newQAM(1, 1.0)
		for s, v := range samples {
			bpsk.decode(real(v), out[s:s+1])
		}
		return out
	}

	axis := newQAM(rp.BPSC/2, 0.5)
	half := rp.BPSC / 2
	for s, v := range samples {
		b := out[s*rp.BPSC:]
		axis.decode(real(v), b[:half])
		axis.decode(imag(v), b[half:rp.BPSC])
	}
	return out
}
