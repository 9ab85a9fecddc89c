package server

import (
	"bufio"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/snipserve/internal/editor"
	"github.com/bastiangx/snipserve/internal/logger"
	"github.com/bastiangx/snipserve/pkg/catalog"
	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/config"
	"github.com/bastiangx/snipserve/pkg/prefix"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Server hosts one editing session over msgpack IPC.
type Server struct {
	completer *completion.Completer
	buffer    *editor.Buffer
	config    config.ServerConfig
	log       *log.Logger
	requests  int
}

// NewServer creates a server driving c with an empty document.
func NewServer(c *completion.Completer, cfg config.ServerConfig) *Server {
	return &Server{
		completer: c,
		buffer:    editor.New(""),
		config:    cfg,
		log:       logger.New("server"),
	}
}

// Start serves stdin/stdout until the client disconnects.
func (s *Server) Start() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads requests from r and writes responses to w. It returns nil on
// a clean end of input.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	enc := msgpack.NewEncoder(w)

	s.log.Debug("Starting server", "max_candidates", s.config.MaxCandidates)
	if err := enc.Encode(Response{Status: StatusReady, State: completion.Idle.String()}); err != nil {
		return errors.Wrap(err, "write ready message")
	}

	for {
		raw, err := dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Client disconnected", "requests", s.requests)
				return nil
			}
			return errors.Wrap(err, "read request")
		}
		s.requests++

		var resp Response
		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Decoding request: %v", err)
			resp = s.errorResponse("", errors.Wrap(err, "invalid request"))
		} else {
			resp = s.Handle(req)
		}

		if err := enc.Encode(resp); err != nil {
			return errors.Wrapf(err, "write response %q", resp.ID)
		}
	}
}

// Handle runs a single request against the session.
func (s *Server) Handle(req Request) Response {
	start := time.Now()

	var edit *completion.Edit
	var text *string
	var err error

	switch req.Action {
	case ActionUpdate:
		err = s.handleUpdate(req)
	case ActionNext:
		s.completer.Next()
	case ActionPrev:
		s.completer.Prev()
	case ActionDismiss:
		s.completer.Dismiss()
	case ActionConfirm:
		if e, ok := s.completer.Confirm(); ok {
			e.Apply(s.buffer)
			s.completer.DocumentChanged(s.buffer.Text())
			t := s.buffer.Text()
			edit, text = &e, &t
		}
	case ActionRegisterType:
		err = s.register(req.Type != nil, catalog.Catalog{Types: typesOf(req.Type)})
	case ActionRegisterGlobal:
		err = s.register(req.Global != nil, catalog.Catalog{Globals: globalsOf(req.Global)})
	case ActionState:
	default:
		err = errors.Newf("unknown action %q", req.Action)
	}

	if err != nil {
		s.log.Debug("Request failed", "id", req.ID, "action", req.Action, "err", err)
		return s.errorResponse(req.ID, err)
	}

	resp := s.snapshot(req.ID)
	resp.Edit = edit
	resp.Text = text
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp
}

func (s *Server) handleUpdate(req Request) error {
	if req.Text != nil {
		if s.config.MaxText > 0 && len(*req.Text) > s.config.MaxText {
			return errors.Newf("text exceeds maximum size of %d bytes", s.config.MaxText)
		}
		if !utf8.ValidString(*req.Text) {
			return errors.New("text is not valid UTF-8")
		}
		if *req.Text != s.buffer.Text() {
			s.buffer.SetText(*req.Text, req.Cursor)
			s.completer.DocumentChanged(*req.Text)
		}
	}

	sel := prefix.At(req.Cursor)
	if req.Anchor != nil {
		sel.Anchor = *req.Anchor
	}
	s.buffer.Select(sel)
	s.completer.Update(s.buffer.Text(), s.buffer.Selection())
	return nil
}

func (s *Server) register(present bool, c catalog.Catalog) error {
	if !present {
		return errors.New("missing registration payload")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.Apply(s.completer.Registry())
	return nil
}

func typesOf(t *catalog.TypeEntry) []catalog.TypeEntry {
	if t == nil {
		return nil
	}
	return []catalog.TypeEntry{*t}
}

func globalsOf(g *catalog.MemberEntry) []catalog.MemberEntry {
	if g == nil {
		return nil
	}
	return []catalog.MemberEntry{*g}
}

// snapshot reports the popup state, capped at MaxCandidates entries.
func (s *Server) snapshot(id string) Response {
	cands := s.completer.Candidates()
	if s.config.MaxCandidates > 0 && len(cands) > s.config.MaxCandidates {
		cands = cands[:s.config.MaxCandidates]
	}
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		out = append(out, Candidate{
			Display:       c.Display,
			Snippet:       c.Item.Snippet,
			Documentation: c.Item.Documentation,
			Kind:          string(c.Item.Category),
			Member:        c.Access != nil,
		})
	}
	return Response{
		ID:         id,
		Status:     StatusOK,
		Candidates: out,
		Selected:   s.completer.Selected(),
		State:      s.completer.State().String(),
		Prefix:     s.completer.Context(),
		Cursor:     s.buffer.Cursor(),
	}
}

func (s *Server) errorResponse(id string, err error) Response {
	resp := s.snapshot(id)
	resp.Status = StatusError
	resp.Error = err.Error()
	return resp
}

// Text returns the session document.
func (s *Server) Text() string {
	return s.buffer.Text()
}
