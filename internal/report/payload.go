// Package report forwards scam intelligence to an external case-management
// system. Delivery is best effort: one attempt per qualifying turn, no
// retries, no acknowledgement tracking. Every report carries the full
// intelligence recomputed from the whole conversation, so the receiver's
// latest update for a session supersedes the earlier ones.
package report

import "github.com/wolfman30/scam-honeypot/internal/intel"

// Payload is the JSON body delivered to the case-management endpoint.
type Payload struct {
	SessionID              string             `json:"sessionId"`
	ScamDetected           bool               `json:"scamDetected"`
	TotalMessagesExchanged int                `json:"totalMessagesExchanged"`
	ExtractedIntelligence  intel.Intelligence `json:"extractedIntelligence"`
	AgentNotes             string             `json:"agentNotes"`
}

// NewPayload builds a report from an extraction result.
func NewPayload(sessionID string, res intel.Result, totalMessages int) Payload {
	return Payload{
		SessionID:              sessionID,
		ScamDetected:           res.Critical,
		TotalMessagesExchanged: totalMessages,
		ExtractedIntelligence:  res.Intelligence(),
		AgentNotes:             res.Notes(),
	}
}
