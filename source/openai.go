package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Moaila/tdma/types"
)

// OpenAI implements a decision source backed by a chat-completions API.
//
// Every query sends a system prompt describing the station's negotiation
// rules plus a user message carrying the round context, and returns the
// assistant's message content verbatim. Any OpenAI-compatible endpoint
// works; set BaseURL for self-hosted gateways.
//
// Stations are queried with differentiated sampling temperatures so that
// identically-prompted stations do not converge on the same slots: a
// station whose name ends in digits N gets temperature 1.5 - 0.3*(N-1),
// clamped to [0.1, 1.5]. Stations without a numeric suffix use 1.0.
type OpenAI struct {
	cfg OpenAIConfig
	hc  *http.Client
}

var _ types.DecisionSource = (*OpenAI)(nil)

// OpenAIConfig holds settings for the chat-completions source.
type OpenAIConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string

	// APIKey is sent as a bearer token. Optional for keyless gateways.
	APIKey string

	// Model is the chat model identifier.
	Model string

	// HTTPClient overrides the default client (10s timeout) when set.
	// Per-query deadlines still come from the caller's context.
	HTTPClient *http.Client
}

const defaultBaseURL = "https://api.openai.com/v1"

// NewOpenAI creates a new chat-completions decision source.
//
// Parameters:
//   - cfg: API endpoint, credentials and model settings
//
// Returns:
//   - *OpenAI: Initialized source
//
// Example:
//
//	src := source.NewOpenAI(source.OpenAIConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	})
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	return &OpenAI{cfg: cfg, hc: hc}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Decide queries the chat model and returns the assistant reply text.
func (o *OpenAI) Decide(ctx context.Context, req types.DecisionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: o.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req)},
			{Role: "user", Content: userPrompt(req)},
		},
		Temperature: stationTemperature(req.Station),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := strings.TrimSuffix(o.cfg.BaseURL, "/") + "/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if o.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	}

	resp, err := o.hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("chat completion failed (status=%d): %s", resp.StatusCode, parsed.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("chat completion failed (status=%d)", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}

// systemPrompt builds the per-station negotiation instructions.
func systemPrompt(req types.DecisionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the controller for wireless station %s. Follow these rules strictly:\n\n", req.Station)
	fmt.Fprintf(&b, "1. %d time slots are being allocated (indices 0-%d).\n", req.NumSlots, req.NumSlots-1)
	fmt.Fprintf(&b, "2. You must coordinate slot usage with %d other stations.\n", len(req.Demand)-1)
	b.WriteString(`3. Respond in JSON, for example: {"channels": [1, 3, 5], "reason": "..."}` + "\n\n")

	b.WriteString("Constraints:\n")
	b.WriteString("- Each slot may be used by at most one station.\n")
	fmt.Fprintf(&b, "- Your current demand: select exactly %d slots.\n", req.Expected)
	b.WriteString("- Prefer slots with low usage heat.\n")
	b.WriteString("- When a conflict is reported you must pick replacement slots.\n\n")

	b.WriteString("Strategy hints:\n")
	fmt.Fprintf(&b, "- Early on, prefer edge slots (such as 0 and %d).\n", req.NumSlots-1)
	b.WriteString("- Treat mid-range slots as alternates.\n")
	b.WriteString("- Adjust dynamically based on the feedback history.")

	return b.String()
}

// userPrompt renders the round context the model should react to.
func userPrompt(req types.DecisionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Round %d: choose the best %d slots for %s given the current network state.\n", req.Round, req.Expected, req.Station)

	if len(req.ClaimedSlots) > 0 {
		fmt.Fprintf(&b, "Slots already claimed by earlier stations this round: %v.\n", req.ClaimedSlots)
	}
	if len(req.ConflictHistory) > 0 {
		fmt.Fprintf(&b, "Historically contested slots (slot: rounds contested): %v.\n", req.ConflictHistory)
	}
	if req.Feedback != nil {
		if ctx, err := json.Marshal(req.Feedback); err == nil {
			fmt.Fprintf(&b, "Latest feedback: %s\n", ctx)
		}
	}

	b.WriteString("Reply with your JSON selection.")

	return b.String()
}

// stationTemperature derives a sampling temperature from the station's
// numeric suffix so that peers explore the slot space differently.
func stationTemperature(station string) float64 {
	i := len(station)
	for i > 0 && station[i-1] >= '0' && station[i-1] <= '9' {
		i--
	}
	if i == len(station) {
		return 1.0
	}

	n, err := strconv.Atoi(station[i:])
	if err != nil || n < 1 {
		return 1.0
	}

	temp := 1.5 - 0.3*float64(n-1)
	if temp < 0.1 {
		temp = 0.1
	}

	return temp
}
