/*
Package server implements msgpack IPC for the word search.

Clients write msgpack maps to stdin and read msgpack maps from stdout. Each
request carries an ID that is echoed back, and an action:

	{"id": "r1", "a": "solve", "g": ["CATS", "DOGE", "EMIT", "RAIN"], "m": 3, "l": 50}

The reply lists the ranked words with the cells that spell them and their
points, the total number of words found, the total points and the search
time in microseconds:

	{"id": "r1", "w": [{"w": "CATS", "p": [[0,0],[0,1],[0,2],[0,3]], "s": 400}], "c": 31, "n": 9200, "t": 412}

Dictionary probes return the words that start with a prefix, in the same
order:

	{"id": "r2", "a": "lookup", "p": "cat", "l": 10}

"info" reports the loaded word count and defaults, "cancel" aborts the
solve in flight. A new solve also aborts the previous one, which then
answers with code 499; that is how a client that lets the user keep typing
avoids waiting for stale boards.

Errors carry the request ID, a message and a code: 400 for unreadable
requests and malformed grids, 422 for grids with blank cells, 499 for
aborted searches.
*/
package server

// Actions understood by the server.
const (
	ActionSolve  = "solve"
	ActionLookup = "lookup"
	ActionInfo   = "info"
	ActionCancel = "cancel"
)

// Error codes sent in ErrorResponse.
const (
	CodeBadRequest = 400
	CodeIncomplete = 422
	CodeAborted    = 499
	CodeInternal   = 500
)

// Request is the union of every request shape; unused fields are left empty.
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"a"`
	Grid   []string `msgpack:"g,omitempty"`
	Min    int      `msgpack:"m,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
	Prefix string   `msgpack:"p,omitempty"`
}

// WordHit is one ranked word with the cells that spell it.
type WordHit struct {
	Word   string   `msgpack:"w"`
	Path   [][2]int `msgpack:"p"`
	Points int      `msgpack:"s"`
}

// SolveResponse answers a solve request.
type SolveResponse struct {
	ID        string    `msgpack:"id"`
	Words     []WordHit `msgpack:"w"`
	Count     int       `msgpack:"c"`
	Total     int       `msgpack:"n"`
	TimeTaken int64     `msgpack:"t"`
}

// LookupResponse answers a lookup request.
type LookupResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"w"`
	Count int      `msgpack:"c"`
}

// StatusResponse answers info and cancel requests.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Words  int    `msgpack:"words,omitempty"`
	Rows   int    `msgpack:"rows,omitempty"`
	Cols   int    `msgpack:"cols,omitempty"`
	Min    int    `msgpack:"min,omitempty"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
