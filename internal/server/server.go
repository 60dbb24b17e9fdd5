package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/mcu-control/mcb/internal/command"
	"github.com/mcu-control/mcb/internal/config"
	"github.com/mcu-control/mcb/internal/peripheral"
	"github.com/mcu-control/mcb/internal/queue"
)

// Server binds the bridge listener and runs the acceptor goroutine. One
// request per connection: the connection is handed through the queue to the
// drain loop, which writes the response and closes it.
type Server struct {
	cfg        *config.Bridge
	queue      *queue.Queue
	dispatcher *command.Dispatcher

	listener *net.TCPListener
	done     chan struct{}
}

// New creates a bridge server. The queue instance is shared with the drain
// loop caller; no other state crosses the goroutine boundary.
func New(cfg *config.Bridge, q *queue.Queue, dispatcher *command.Dispatcher) *Server {
	return &Server{
		cfg:        cfg,
		queue:      q,
		dispatcher: dispatcher,
	}
}

// Start binds the listener on all interfaces and launches the acceptor
// goroutine.
func (s *Server) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.cfg.ListenPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind bridge listener on %s: %w", addr, err)
	}

	s.listener = listener.(*net.TCPListener)
	s.done = make(chan struct{})

	log.Printf("bridge listening on %s", s.listener.Addr())
	go s.acceptLoop()
	return nil
}

// Addr returns the bound listener address. Valid after Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener and waits for the acceptor goroutine to exit.
// Requests already queued remain in the queue and are still processed by
// subsequent drain passes.
func (s *Server) Stop() error {
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	<-s.done
	return err
}

// acceptLoop accepts connections until the listener is closed or a fatal
// accept error occurs. Deadline expirations are the periodic liveness check,
// not errors. A failure on an individual connection closes only that
// connection.
func (s *Server) acceptLoop() {
	defer close(s.done)

	for {
		if err := s.listener.SetDeadline(time.Now().Add(s.cfg.AcceptTimeout)); err != nil {
			log.Printf("accept loop terminated: set deadline: %v", err)
			return
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if !errors.Is(err, net.ErrClosed) {
				log.Printf("accept loop terminated: %v", err)
			}
			return
		}

		s.receive(conn)
	}
}

// receive performs the one bounded read for a new connection and enqueues
// the request. Connections that yield no data are closed immediately
// without enqueueing; they are no-op clients, not errors.
func (s *Server) receive(conn net.Conn) {
	if err := conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
		_ = conn.Close()
		return
	}

	buf := make([]byte, s.cfg.MaxRequestBytes)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		_ = conn.Close()
		return
	}

	text := strings.TrimSpace(string(buf[:n]))
	if text == "" {
		_ = conn.Close()
		return
	}

	s.queue.Push(queue.NewItem(conn, text))
}

// Drain is the per-tick hook: it pops and fully processes requests until the
// queue is observed empty, then returns to the host. It never blocks waiting
// for new items. Drain must only be called from the goroutine that owns the
// peripheral Caller.
func (s *Server) Drain(caller peripheral.Caller) {
	for {
		item, ok := s.queue.TryPop()
		if !ok {
			return
		}
		s.process(caller, item)
	}
}

// process handles one dequeued request: dispatch, respond, close. The
// connection is closed exactly once on every path; Dispatch never panics.
func (s *Server) process(caller peripheral.Caller, item queue.Item) {
	defer func() {
		if err := item.Conn.Close(); err != nil {
			log.Printf("close connection failed: request=%s: %v", item.ID, err)
		}
	}()

	resp := s.dispatcher.Dispatch(caller, item.ID, item.Text)

	if err := item.Conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		log.Printf("set write deadline failed: request=%s: %v", item.ID, err)
		return
	}
	if _, err := item.Conn.Write(resp.Encode()); err != nil {
		log.Printf("write response failed: request=%s: %v", item.ID, err)
	}
}
