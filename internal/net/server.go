package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/engine"
	"fenrir/internal/metrics"
)

const (
	maxRecvSize        = 4 * 1024
	defaultNWorkers    = 10
	defaultConnTimeout = 30 * time.Second
)

var (
	ErrImproperConversion = errors.New("improper type conversion")
	ErrClientDoesNotExist = errors.New("client does not exist")
)

// clientSession tracks one connected TCP session by a uuid generated at
// accept time (the teacher used uuid.New() to mint order ids on its binary
// wire; spec.md's order ids are caller-supplied, so uuid is re-homed here
// onto session identity instead of being dropped — see DESIGN.md).
type clientSession struct {
	id   string
	conn net.Conn
}

// clientMessage links a decoded request to the session that sent it.
type clientMessage struct {
	sessionID string
	request   any
}

// Server hosts an Engine behind a JSON-over-TCP line protocol, using a
// tomb-supervised worker pool exactly as the teacher's
// internal/net/server.go does.
type Server struct {
	address string
	port    int
	eng     *engine.Engine
	pool    WorkerPool

	cancel context.CancelFunc

	sessionsLock sync.Mutex
	sessions     map[string]*clientSession

	messages chan clientMessage
}

// New builds a Server hosting eng on address:port.
func New(address string, port int, eng *engine.Engine) *Server {
	return &Server{
		address:  address,
		port:     port,
		eng:      eng,
		pool:     NewWorkerPool(defaultNWorkers),
		sessions: make(map[string]*clientSession),
		messages: make(chan clientMessage, 1),
	}
}

// Shutdown stops the server.
func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run starts accepting connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("unable to start listener: %w", err)
	}
	defer listener.Close()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.sessionHandler(t)
	})

	log.Info().Str("address", listener.Addr().String()).Msg("server running")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					log.Error().Err(err).Msg("error accepting client")
					continue
				}
			}
			s.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

func (s *Server) addSession(conn net.Conn) string {
	id := uuid.New().String()
	s.sessionsLock.Lock()
	s.sessions[id] = &clientSession{id: id, conn: conn}
	s.sessionsLock.Unlock()
	log.Info().Str("session", id).Str("address", conn.RemoteAddr().String()).Msg("new client connected")
	return id
}

func (s *Server) removeSession(id string) {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	delete(s.sessions, id)
}

func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-s.messages:
			if err := s.dispatch(msg); err != nil {
				log.Error().Err(err).Str("session", msg.sessionID).Msg("error handling request")
				s.reportError(msg.sessionID, err)
			}
		}
	}
}

func (s *Server) dispatch(msg clientMessage) error {
	switch req := msg.request.(type) {
	case engine.CreateRequest:
		metrics.Default().OrdersTotal.WithLabelValues(req.Side.String(), "create").Inc()
		start := time.Now()
		err := s.eng.Create(req)
		metrics.Default().MatchLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		trades := s.eng.DrainTrades()
		for _, trade := range trades {
			metrics.Default().TradesTotal.Inc()
			qty, _ := trade.Quantity.Float64()
			metrics.Default().TradeVolume.Add(qty)
			s.reportTrade(msg.sessionID, NewTradeReport(trade))
		}
		s.recordDepth()
		return nil
	case engine.CancelRequest:
		metrics.Default().OrdersTotal.WithLabelValues("", "cancel").Inc()
		err := s.eng.Cancel(req)
		s.recordDepth()
		return err
	default:
		return fmt.Errorf("%w: unrecognised request type", ErrImproperConversion)
	}
}

func (s *Server) recordDepth() {
	view := s.eng.BookView()
	askDepth, bidDepth := 0.0, 0.0
	for _, l := range view.Asks {
		f, _ := l.Quantity.Float64()
		askDepth += f
	}
	for _, l := range view.Bids {
		f, _ := l.Quantity.Float64()
		bidDepth += f
	}
	metrics.Default().OrderbookDepth.WithLabelValues("ask").Set(askDepth)
	metrics.Default().OrderbookDepth.WithLabelValues("bid").Set(bidDepth)
}


func (s *Server) reportTrade(sessionID string, trade TradeReport) {
	s.sessionsLock.Lock()
	session, ok := s.sessions[sessionID]
	s.sessionsLock.Unlock()
	if !ok {
		return
	}
	payload, err := json.Marshal(trade)
	if err != nil {
		log.Error().Err(err).Msg("unable to encode trade report")
		return
	}
	if _, err := session.conn.Write(append(payload, '\n')); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("unable to send trade report")
	}
}

func (s *Server) reportError(sessionID string, cause error) {
	s.sessionsLock.Lock()
	session, ok := s.sessions[sessionID]
	s.sessionsLock.Unlock()
	if !ok {
		return
	}
	payload, err := json.Marshal(map[string]string{"error": cause.Error()})
	if err != nil {
		return
	}
	if _, err := session.conn.Write(append(payload, '\n')); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("unable to send error report")
	}
}

// handleConnection reads one JSON request per invocation and re-enqueues
// the connection for its next message, matching the teacher's
// self-requeuing handleConnection pattern.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return ErrImproperConversion
	}

	sessionID := s.sessionIDFor(conn)

	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Msg("failed setting connection deadline")
		s.closeSession(sessionID, conn)
		return nil
	}

	buffer := make([]byte, maxRecvSize)
	n, err := conn.Read(buffer)
	if err != nil {
		s.closeSession(sessionID, conn)
		return nil
	}

	request, err := ParseRequest(buffer[:n])
	if err != nil {
		s.reportError(sessionID, err)
		s.pool.AddTask(conn)
		return nil
	}

	s.messages <- clientMessage{sessionID: sessionID, request: request}
	s.pool.AddTask(conn)
	return nil
}

func (s *Server) sessionIDFor(conn net.Conn) string {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	for id, sess := range s.sessions {
		if sess.conn == conn {
			return id
		}
	}
	return ""
}

func (s *Server) closeSession(id string, conn net.Conn) {
	s.removeSession(id)
	conn.Close()
}
