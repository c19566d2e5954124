package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"sort"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/game"
	domnet "github.com/dannyallover/dominion/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string `json:"name"`
	Info        string `json:"info"`
	Types       string `json:"types"`
	Cost        int    `json:"cost"`
	Points      int    `json:"points,omitempty"`
	PlusActions int    `json:"plusActions,omitempty"`
	PlusBuys    int    `json:"plusBuys,omitempty"`
	PlusCoins   int    `json:"plusCoins,omitempty"`
	PlusCards   int    `json:"plusCards,omitempty"`
	Kingdom     bool   `json:"kingdom"`
}

// KingdomInfo is the JSON representation of a preset for the /api/kingdoms endpoint.
type KingdomInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

// connectMessage is the first frame a browser sends on /ws.
type connectMessage struct {
	Type string `json:"type"`
	Addr string `json:"addr"`
	Name string `json:"name"`
}

// Server is the dominion web UI server.
type Server struct {
	kingdomFile string
	logger      *zap.Logger
	mux         *http.ServeMux
}

// NewServer creates a new web server. kingdomFile may be empty.
func NewServer(kingdomFile string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		kingdomFile: kingdomFile,
		logger:      logger,
		mux:         http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/kingdoms", s.handleKingdoms)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	kingdom := make(map[string]bool, len(game.KingdomCardNames))
	for _, name := range game.KingdomCardNames {
		kingdom[name] = true
	}

	cards := make([]CardInfo, 0, len(game.CardRegistry))
	for name, ctor := range game.CardRegistry {
		c := ctor()
		cards = append(cards, CardInfo{
			Name:        name,
			Info:        c.Info,
			Types:       c.Types.String(),
			Cost:        c.Cost,
			Points:      c.Points,
			PlusActions: c.PlusActions,
			PlusBuys:    c.PlusBuys,
			PlusCoins:   c.PlusCoins,
			PlusCards:   c.PlusCards,
			Kingdom:     kingdom[name],
		})
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Cost != cards[j].Cost {
			return cards[i].Cost < cards[j].Cost
		}
		return cards[i].Name < cards[j].Name
	})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleKingdoms(w http.ResponseWriter, r *http.Request) {
	kingdoms, err := loadKingdoms(s.kingdomFile)
	if err != nil {
		s.logger.Warn("could not load kingdom file", zap.String("path", s.kingdomFile), zap.Error(err))
		http.Error(w, "could not load kingdom file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kingdoms)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Warn("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg connectMessage
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	// Open TCP connection to game server
	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":   "error",
			"result": fmt.Sprintf("Could not connect to game server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()
	s.logger.Info("proxying browser seat", zap.String("addr", connectMsg.Addr), zap.String("name", connectMsg.Name))

	// Send join message over TCP
	if err := json.NewEncoder(tcpConn).Encode(domnet.ClientMessage{Type: domnet.MsgJoin, Name: connectMsg.Name}); err != nil {
		s.logger.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					s.logger.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.logger.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server). A closed tab drops the
	// TCP seat so the host's read fails and the pump above exits.
	go func() {
		defer tcpConn.Close()
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.logger.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
