package rx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ofdm_rx_frames_decoded_total",
		Help: "Frames that passed the CRC check and were delivered.",
	})

	crcFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ofdm_rx_crc_failures_total",
		Help: "Fully collected frames dropped on a CRC mismatch.",
	})

	headerDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ofdm_rx_header_drops_total",
		Help: "SIGNAL symbols dropped on a parity failure or invalid rate code.",
	})

	stageOverruns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ofdm_rx_stage_overruns_total",
		Help: "Work calls that exceeded the real-time budget of one batch.",
	}, []string{"stage"})
)
