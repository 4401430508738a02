package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"barswing/internal/config"
	"barswing/internal/sim"
)

// Server hosts the static game bundle, an informational endpoint and the
// websocket play channel. Each connection gets its own session, stepped by a
// per-connection ticker; the physics core never sees the transport.
type Server struct {
	cfg      *config.Config
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	} else {
		mux.HandleFunc("/", s.handleIndex)
	}
	mux.HandleFunc("/about", s.handleAbout)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "barswing: swing, release, re-grab or land on a mat.")
	fmt.Fprintln(w, "controls: arrow keys pump the swing, space releases.")
}

// handleWS runs one play session over a websocket connection. Reads happen
// on the reader goroutine and only latch input under the session lock; the
// ticker goroutine is the single writer and the only caller of Advance, so
// the latch-before-integrate ordering of the core is preserved.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := s.cfg.NewSession()
	s.logger.Printf("session started for %s", r.RemoteAddr)
	defer s.logger.Printf("session ended for %s", r.RemoteAddr)

	if err := conn.WriteJSON(helloMsg(session.Arena)); err != nil {
		return
	}

	var mu sync.Mutex // guards session between reader and ticker

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg KeyMsg
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type != MsgKey {
				continue
			}
			k, ok := sessionKey(msg.Key)
			if !ok {
				continue
			}
			mu.Lock()
			if msg.Down {
				session.Press(k)
			} else {
				session.Lift(k)
			}
			mu.Unlock()
		}
	}()

	frame := time.Second / time.Duration(s.cfg.FrameRate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	clock := sim.NewClock(session.Tuning.MaxFrameDt)
	clock.Tick()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			mu.Lock()
			session.Advance(clock.Tick())
			msg := stateMsg(session.Snapshot())
			mu.Unlock()

			conn.SetWriteDeadline(time.Now().Add(2 * frame))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
