package conversation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// unknownSessionID is used when the caller omits a session id.
const unknownSessionID = "unknown"

// counterpartSenders are the history roles whose text counts as scammer speech.
var counterpartSenders = map[string]struct{}{
	"scammer":     {},
	"user":        {},
	"counterpart": {},
}

// HistoryMessage is one prior exchanged message, oldest first.
type HistoryMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// FromCounterpart reports whether the message was sent by the scammer side.
func (m HistoryMessage) FromCounterpart() bool {
	_, ok := counterpartSenders[strings.ToLower(strings.TrimSpace(m.Sender))]
	return ok
}

// Turn is one inbound counterpart message plus the caller-supplied history.
type Turn struct {
	SessionID string
	Text      string
	History   []HistoryMessage
}

// FullText joins counterpart history and the current message in order.
func (t Turn) FullText() string {
	parts := make([]string, 0, len(t.History)+1)
	for _, msg := range t.History {
		if msg.FromCounterpart() && msg.Text != "" {
			parts = append(parts, msg.Text)
		}
	}
	parts = append(parts, t.Text)
	return strings.Join(parts, " ")
}

// TotalMessages counts the history plus the current message.
func (t Turn) TotalMessages() int {
	return len(t.History) + 1
}

type turnPayload struct {
	SessionID           json.RawMessage `json:"sessionId"`
	Message             json.RawMessage `json:"message"`
	ConversationHistory json.RawMessage `json:"conversationHistory"`
}

type wireHistoryMessage struct {
	Sender string          `json:"sender"`
	Role   string          `json:"role"`
	Text   json.RawMessage `json:"text"`
}

// DecodeTurn parses an inbound body permissively. It never fails: missing or
// malformed fields fall back to the unknown session id, the placeholder
// greeting and an empty history.
func DecodeTurn(body []byte) Turn {
	turn := Turn{SessionID: unknownSessionID, Text: placeholderGreeting}

	var payload turnPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return turn
	}

	var sessionID string
	if err := json.Unmarshal(payload.SessionID, &sessionID); err == nil && strings.TrimSpace(sessionID) != "" {
		turn.SessionID = sessionID
	}
	if text := decodeMessageText(payload.Message); strings.TrimSpace(text) != "" {
		turn.Text = text
	}
	turn.History = decodeHistory(payload.ConversationHistory)
	return turn
}

func decodeMessageText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '{':
		var msg struct {
			Text json.RawMessage `json:"text"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			return ""
		}
		return stringify(msg.Text)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	default:
		return ""
	}
}

func decodeHistory(raw json.RawMessage) []HistoryMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	history := make([]HistoryMessage, 0, len(entries))
	for _, entry := range entries {
		var wire wireHistoryMessage
		if err := json.Unmarshal(entry, &wire); err != nil {
			continue
		}
		sender := wire.Sender
		if sender == "" {
			sender = wire.Role
		}
		history = append(history, HistoryMessage{Sender: sender, Text: stringify(wire.Text)})
	}
	return history
}

// stringify renders a scalar JSON value as text. Numbers keep their literal
// digits so phone numbers sent unquoted survive intact.
func stringify(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}
