package scamsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/wolfman30/scam-honeypot/internal/conversation"
)

const decoySender = "Ramesh"

type speakerLabels struct {
	scammer string
	decoy   string
}

var (
	plainLabels = speakerLabels{scammer: "Scammer:", decoy: "Ramesh: "}
	colorLabels = speakerLabels{scammer: "\x1b[31mScammer:\x1b[0m", decoy: "\x1b[32mRamesh: \x1b[0m"}
)

// labelsFor colors speaker labels only when out is an interactive terminal.
func labelsFor(out io.Writer) speakerLabels {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return colorLabels
	}
	return plainLabels
}

// Message is one history entry as sent on the wire.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Request is the inbound turn body.
type Request struct {
	SessionID           string    `json:"sessionId"`
	Message             Message   `json:"message"`
	ConversationHistory []Message `json:"conversationHistory"`
}

// Target answers one turn.
type Target interface {
	Send(ctx context.Context, req Request) (string, error)
}

// HTTPTarget posts turns to a running instance.
type HTTPTarget struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewHTTPTarget creates a target for url.
func NewHTTPTarget(url, apiKey string, timeout time.Duration) *HTTPTarget {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPTarget{url: url, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

func (t *HTTPTarget) Send(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("scamsim: encode turn: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("scamsim: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		httpReq.Header.Set("x-api-key", t.apiKey)
	}

	resp, err := t.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("scamsim: post turn: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("scamsim: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("scamsim: decode reply: %w", err)
	}
	return out.Reply, nil
}

// LocalTarget runs turns in-process through a conversation handler.
type LocalTarget struct {
	handler *conversation.Handler
}

func NewLocalTarget(handler *conversation.Handler) *LocalTarget {
	return &LocalTarget{handler: handler}
}

func (t *LocalTarget) Send(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("scamsim: encode turn: %w", err)
	}
	return t.handler.Process(ctx, conversation.DecodeTurn(body)).Reply, nil
}

// TurnResult records one exchange.
type TurnResult struct {
	Scammer  string
	Reply    string
	Duration time.Duration
}

// Run plays script against target, appending both sides to the history after
// every successful turn. It stops at the first failed turn.
func Run(ctx context.Context, target Target, sessionID string, script Script, pause time.Duration, out io.Writer) ([]TurnResult, error) {
	return play(ctx, target, sessionID, script, pause, out, plainLabels)
}

func play(ctx context.Context, target Target, sessionID string, script Script, pause time.Duration, out io.Writer, labels speakerLabels) ([]TurnResult, error) {
	history := make([]Message, 0, 2*len(script.Lines))
	results := make([]TurnResult, 0, len(script.Lines))

	for i, line := range script.Lines {
		fmt.Fprintf(out, "--- Turn %d ---\n", i+1)
		fmt.Fprintf(out, "%s %s\n", labels.scammer, line)

		start := time.Now()
		reply, err := target.Send(ctx, Request{
			SessionID:           sessionID,
			Message:             Message{Sender: "scammer", Text: line},
			ConversationHistory: history,
		})
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return results, err
		}

		fmt.Fprintf(out, "%s %s\n", labels.decoy, reply)
		fmt.Fprintf(out, "Time:    %.2fs\n\n", elapsed.Seconds())
		results = append(results, TurnResult{Scammer: line, Reply: reply, Duration: elapsed})
		history = append(history,
			Message{Sender: "Scammer", Text: line},
			Message{Sender: decoySender, Text: reply},
		)

		if pause > 0 && i < len(script.Lines)-1 {
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}
	}
	return results, nil
}
