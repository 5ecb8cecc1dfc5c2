package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/jeongseonghan/ofdm80211/internal/radio"
	"github.com/jeongseonghan/ofdm80211/internal/wifi"
)

// Handlers bridges HTTP and WebSocket requests to the radio surfaces.
type Handlers struct {
	hub *WSHub
	tx  *radio.Transmitter

	framesReceived atomic.Int64
	framesSent     atomic.Int64
}

// NewHandlers creates the request handlers.
func NewHandlers(hub *WSHub, tx *radio.Transmitter) *Handlers {
	return &Handlers{hub: hub, tx: tx}
}

// OnFrames is the receiver callback: it forwards every decoded payload to
// the connected WebSocket clients.
func (h *Handlers) OnFrames(payloads [][]byte) {
	for _, p := range payloads {
		h.framesReceived.Add(1)
		h.hub.Broadcast(WSMessage{
			Type: "frame",
			Payload: FramePayload{
				Length: len(p),
				Data:   base64.StdEncoding.EncodeToString(p),
			},
		})
	}
}

type sendRequest struct {
	Data string `json:"data"` // payload bytes, base64
	Rate int    `json:"rate"` // wifi.Rate enum value
}

// HandleSend accepts a payload and transmits it.
func (h *Handlers) HandleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	payload, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		http.Error(w, "bad payload encoding: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Rate < 0 || req.Rate >= wifi.NumRates {
		http.Error(w, "unknown rate", http.StatusBadRequest)
		return
	}

	if err := h.tx.Send(payload, wifi.Rate(req.Rate)); err != nil {
		logger.Error("transmit failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.framesSent.Add(1)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":     true,
		"length": len(payload),
		"rate":   wifi.Rate(req.Rate).String(),
	})
}

// HandleStatus reports counters and the rate table.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	rates := make([]map[string]any, 0, wifi.NumRates)
	for i := 0; i < wifi.NumRates; i++ {
		rp := wifi.Rate(i).Params()
		rates = append(rates, map[string]any{
			"rate": i,
			"name": rp.Name,
			"dbps": rp.DBPS,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"framesReceived": h.framesReceived.Load(),
		"framesSent":     h.framesSent.Load(),
		"rates":          rates,
	})
}

// HandleWebSocket upgrades a connection and keeps it registered until the
// client goes away. Clients only listen; frames are pushed by OnFrames.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade", "err", err)
		return
	}
	h.hub.AddClient(conn)

	go func() {
		defer h.hub.RemoveClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
