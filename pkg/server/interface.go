/*
Package server implements msgpack IPC for one completion session.

The host editor talks to the server over stdin/stdout. Each message is a
single msgpack map. The server keeps its own copy of the document, so a host
sends the text with every update and gets the edited text back on confirm.

# IPC

Every request carries an ID and an action. The server answers each request
with exactly one response echoing the ID, followed by the popup state.

	{"id": "1", "action": "update", "text": "self.mo", "cursor": 7}

	{"id": "1", "status": "ok", "c": [{"d": "self.move_to", "s": "move_to($x, y)", "m": true}],
	 "sel": 0, "state": "suggesting", "p": {"raw": "self.mo", "start": 0, "end": 7}, "cursor": 7, "t": 41}

Confirming applies the edit to the server's document:

	{"id": "2", "action": "confirm"}

	{"id": "2", "status": "ok", "edit": {"del": 2, "ins": "move_to(x, y)", "back": 5},
	 "text": "self.move_to(x, y)", "cursor": 13, "state": "idle", "t": 12}

Custom types and globals can be registered at runtime:

	{"id": "3", "action": "register_type", "type": {"name": "player", "sep": ":", "members": [{"name": "jump"}]}}
	{"id": "4", "action": "register_global", "global": {"name": "foreach", "snippet": "for $i ..."}}

# Actions

  - update: replace the document (when text is present) and move the cursor
  - next, prev: move the selection
  - dismiss: close the popup until the cursor moves
  - confirm: apply the selected candidate
  - register_type, register_global: extend the registry
  - state: report without changing anything

A request that cannot be decoded or handled gets a response with status
"error". Only a broken stream stops the server.

Timings in "t" are in microseconds.
*/
package server

import (
	"github.com/bastiangx/snipserve/pkg/catalog"
	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/prefix"
)

// Actions understood by the server.
const (
	ActionUpdate         = "update"
	ActionNext           = "next"
	ActionPrev           = "prev"
	ActionDismiss        = "dismiss"
	ActionConfirm        = "confirm"
	ActionRegisterType   = "register_type"
	ActionRegisterGlobal = "register_global"
	ActionState          = "state"
)

// Response statuses.
const (
	StatusReady = "ready"
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is one client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	// Text replaces the document on update. Nil keeps the current text.
	Text   *string `msgpack:"text,omitempty"`
	Cursor int     `msgpack:"cursor"`
	// Anchor is the other end of the selection, nil when nothing is selected.
	Anchor *int                 `msgpack:"anchor,omitempty"`
	Type   *catalog.TypeEntry   `msgpack:"type,omitempty"`
	Global *catalog.MemberEntry `msgpack:"global,omitempty"`
}

// Candidate is a popup entry.
type Candidate struct {
	Display       string `msgpack:"d"`
	Snippet       string `msgpack:"s,omitempty"`
	Documentation string `msgpack:"doc,omitempty"`
	Kind          string `msgpack:"k,omitempty"`
	Member        bool   `msgpack:"m,omitempty"`
}

// Response answers a Request.
type Response struct {
	ID         string           `msgpack:"id"`
	Status     string           `msgpack:"status"`
	Error      string           `msgpack:"error,omitempty"`
	Candidates []Candidate      `msgpack:"c"`
	Selected   int              `msgpack:"sel"`
	State      string           `msgpack:"state"`
	Prefix     prefix.Context   `msgpack:"p"`
	Edit       *completion.Edit `msgpack:"edit,omitempty"`
	Text       *string          `msgpack:"text,omitempty"`
	Cursor     int              `msgpack:"cursor"`
	TimeTaken  int64            `msgpack:"t"`
}
