package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Moaila/tdma/internal/natsutil"
	"github.com/Moaila/tdma/types"
	"github.com/nats-io/nats.go"
)

// NATS implements a decision source using NATS request-reply.
//
// Each query publishes the JSON-encoded DecisionRequest to a per-station
// subject ("<prefix>.<station>") and waits for a single reply. The reply
// payload is returned verbatim as the raw proposal text; the responder is
// free to answer with any text containing a slot list.
type NATS struct {
	conn   *nats.Conn
	prefix string
}

var _ types.DecisionSource = (*NATS)(nil)

// DefaultSubjectPrefix is the subject prefix used when none is given.
const DefaultSubjectPrefix = "tdma.decide"

// NewNATS creates a new NATS-backed decision source.
//
// Parameters:
//   - conn: Established NATS connection
//   - prefix: Subject prefix (DefaultSubjectPrefix if empty)
//
// Returns:
//   - *NATS: Initialized NATS source
//
// Example:
//
//	conn, _ := nats.Connect(nats.DefaultURL)
//	src := source.NewNATS(conn, "lab.tdma")
//	// queries for station "AP1" go to subject "lab.tdma.AP1"
func NewNATS(conn *nats.Conn, prefix string) *NATS {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	return &NATS{conn: conn, prefix: prefix}
}

// Subject returns the request subject for a station.
func (n *NATS) Subject(station string) string {
	return n.prefix + "." + station
}

// Decide sends the request to the station's subject and returns the reply
// payload as text.
//
// The call is bounded by ctx; the coordinator's decision timeout applies.
func (n *NATS) Decide(ctx context.Context, req types.DecisionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode decision request: %w", err)
	}

	msg, err := n.conn.RequestWithContext(ctx, n.Subject(req.Station), payload)
	if err != nil {
		if natsutil.IsConnectivityError(err) {
			return "", fmt.Errorf("decision transport unavailable for %s: %w", req.Station, err)
		}

		return "", fmt.Errorf("decision request to %s failed: %w", req.Station, err)
	}

	return string(msg.Data), nil
}
