package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP control surface of the PHY: transmit intake, status,
// metrics and the frame WebSocket.
type Server struct {
	mux     *http.ServeMux
	handler *Handlers
	addr    string
}

// NewServer creates the HTTP server.
func NewServer(addr string, handler *Handlers) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		handler: handler,
		addr:    addr,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/send", s.handler.HandleSend)
	s.mux.HandleFunc("/api/status", s.handler.HandleStatus)
	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)
	s.mux.Handle("/metrics", promhttp.Handler())
}

// Start starts the HTTP server and blocks.
func (s *Server) Start() error {
	logger.Info("listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
