package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	// ActionObserve reports measured content heights for rendered events.
	ActionObserve Action = "observe"
	// ActionRefresh requests the current layout snapshot without reporting
	// anything.
	ActionRefresh Action = "refresh"
	ActionPing    Action = "ping"
)

// RequestPayload is the single client message shape. Measurements maps event
// id to measured content height in pixels and is only read for
// ActionObserve.
type RequestPayload struct {
	Action       Action             `json:"action"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	// EventSnapshot carries a freshly computed layout.
	EventSnapshot Event = "snapshot"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// SnapshotResponse pushes a recomputed layout after observation or refresh.
type SnapshotResponse struct {
	Event    Event       `json:"event"`
	Snapshot interface{} `json:"snapshot"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
