package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bastiangx/wordhunt/internal/display"
	"github.com/bastiangx/wordhunt/internal/logger"
	"github.com/bastiangx/wordhunt/pkg/config"
	"github.com/bastiangx/wordhunt/pkg/dictionary"
	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/lexicon"
	"github.com/bastiangx/wordhunt/pkg/rank"
	"github.com/bastiangx/wordhunt/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests read from a stream.
type Server struct {
	lex    *lexicon.Lexicon
	store  *dictionary.Store
	config *config.Config
	scorer display.Scorer
	logger *log.Logger

	reader io.Reader
	writer io.Writer

	writeMu sync.Mutex
	encoder *msgpack.Encoder

	mu       sync.Mutex
	inflight context.CancelFunc
	gen      int
	wg       sync.WaitGroup

	requestCount int
}

// NewServer creates a server on stdin/stdout.
func NewServer(lex *lexicon.Lexicon, store *dictionary.Store, cfg *config.Config) *Server {
	return NewServerWithIO(lex, store, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on the given streams.
func NewServerWithIO(lex *lexicon.Lexicon, store *dictionary.Store, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		lex:     lex,
		store:   store,
		config:  cfg,
		scorer:  display.NewScorer(cfg.Score.Points, cfg.Score.ExtraLetter),
		logger:  logger.New("server"),
		reader:  r,
		writer:  w,
		encoder: msgpack.NewEncoder(w),
	}
}

// Start processes requests until the input ends or ctx is cancelled. Solves
// still running when the input ends are allowed to finish; cancelling ctx
// aborts them and returns without waiting for the next message.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	defer s.wg.Wait()

	s.send(map[string]string{"status": "ready"})

	messages := s.readMessages(ctx)
	for {
		select {
		case <-ctx.Done():
			s.abortInflight()
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if msg.err != nil {
				if errors.Is(msg.err, io.EOF) {
					return nil
				}
				s.logger.Errorf("Reading request: %v", msg.err)
				return msg.err
			}
			s.handleRequest(ctx, msg.raw)
		}
	}
}

type message struct {
	raw msgpack.RawMessage
	err error
}

// readMessages decodes the input on its own goroutine so that a blocked read
// does not hold up cancellation. The goroutine stops after the first error or
// once ctx is done.
func (s *Server) readMessages(ctx context.Context) <-chan message {
	messages := make(chan message)
	go func() {
		defer close(messages)
		dec := msgpack.NewDecoder(bufio.NewReader(s.reader))
		for {
			var raw msgpack.RawMessage
			err := dec.Decode(&raw)
			select {
			case messages <- message{raw: raw, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return messages
}

// handleRequest decodes a single message and dispatches it by action.
func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) {
	s.requestCount++

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Debugf("Unmarshaling request: %v", err)
		s.sendError("", "invalid request", CodeBadRequest)
		return
	}

	action := req.Action
	if action == "" && len(req.Grid) > 0 {
		action = ActionSolve
	}

	switch action {
	case ActionSolve:
		s.handleSolve(ctx, req)
	case ActionLookup:
		s.handleLookup(req)
	case ActionInfo:
		s.send(StatusResponse{
			ID:     req.ID,
			Status: "ok",
			Words:  s.lex.Len(),
			Rows:   s.config.Grid.Rows,
			Cols:   s.config.Grid.Cols,
			Min:    s.config.Search.MinWordLength,
		})
	case ActionCancel:
		status := "idle"
		if s.abortInflight() {
			status = "cancelled"
		}
		s.send(StatusResponse{ID: req.ID, Status: status})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), CodeBadRequest)
	}
}

// handleSolve validates the grid synchronously, then searches in the
// background so that a later solve can abort this one.
func (s *Server) handleSolve(ctx context.Context, req Request) {
	g, err := grid.FromRows(req.Grid)
	if err != nil {
		s.sendError(req.ID, err.Error(), CodeBadRequest)
		return
	}
	if err := g.Complete(); err != nil {
		s.sendError(req.ID, err.Error(), CodeIncomplete)
		return
	}

	minLen := req.Min
	if minLen < 1 {
		minLen = s.config.Search.MinWordLength
	}
	limit := s.clampLimit(req.Limit)

	s.mu.Lock()
	if s.inflight != nil {
		s.inflight()
	}
	solveCtx, cancel := context.WithCancel(ctx)
	s.inflight = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.finish(gen, cancel)
		s.runSolve(solveCtx, req.ID, g, minLen, limit)
	}()
}

func (s *Server) finish(gen int, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	if s.gen == gen {
		s.inflight = nil
	}
	s.mu.Unlock()
}

func (s *Server) runSolve(ctx context.Context, id string, g *grid.Grid, minLen, limit int) {
	start := time.Now()
	sv := solver.New(s.lex, solver.Options{MinLength: minLen, Workers: s.config.Search.Workers})
	rs, err := sv.Search(ctx, g)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Debugf("Search %s aborted", id)
			s.sendError(id, "search aborted", CodeAborted)
			return
		}
		s.sendError(id, err.Error(), CodeInternal)
		return
	}
	elapsed := time.Since(start)

	ranked := rank.Rank(rs)
	shown := rank.Top(ranked, limit)
	hits := make([]WordHit, len(shown))
	for i, fw := range shown {
		path := make([][2]int, len(fw.Path))
		for j, c := range fw.Path {
			path[j] = [2]int{c.Row, c.Col}
		}
		hits[i] = WordHit{Word: fw.Word, Path: path, Points: s.scorer.Points(fw.Word)}
	}

	s.logger.Debugf("Solved %s: %d words in %v", g, len(ranked), elapsed)
	s.send(SolveResponse{
		ID:        id,
		Words:     hits,
		Count:     len(ranked),
		Total:     s.scorer.Total(ranked),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleLookup(req Request) {
	if s.store == nil {
		s.sendError(req.ID, "dictionary store not loaded", CodeInternal)
		return
	}
	words := s.store.WithPrefix(req.Prefix, s.clampLimit(req.Limit))
	if words == nil {
		words = []string{}
	}
	s.send(LookupResponse{ID: req.ID, Words: words, Count: len(words)})
}

// clampLimit maps a requested limit onto 1..server.max_limit, 0 meaning the max.
func (s *Server) clampLimit(limit int) int {
	maxLimit := s.config.Server.MaxLimit
	if limit < 1 || limit > maxLimit {
		return maxLimit
	}
	return limit
}

// abortInflight cancels the running solve, if any.
func (s *Server) abortInflight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		return false
	}
	s.inflight()
	s.inflight = nil
	return true
}

func (s *Server) send(response any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
