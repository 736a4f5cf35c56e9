package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"healthmate/backend/common"
	hmerrors "healthmate/backend/common/errors"
)

var ErrAnalyzerDisabled = hmerrors.New(hmerrors.ErrAnalyzerDisabled, "AI analysis is not configured")

type Request struct {
	Model    string `json:"model,omitempty"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	Filename string `json:"filename"`
}

type Result struct {
	Model    string          `json:"model"`
	Summary  string          `json:"summary"`
	Findings json.RawMessage `json:"findings,omitempty"`
}

// Analyzer sends an uploaded report to the analysis provider.
type Analyzer interface {
	Analyze(ctx context.Context, req *Request) (*Result, error)
}

// Default is the analyzer built by Init from the AI_* settings.
var Default Analyzer

func Init() {
	Default = NewHTTPAnalyzer(common.AIEndpoint, common.AIAPIKey, common.AIModel, common.AITimeout)
	if common.AIEndpoint == "" {
		common.SysLog("AI_ENDPOINT not set, analysis requests will fail")
	}
}

// HTTPAnalyzer posts the report URL as JSON to an external endpoint.
type HTTPAnalyzer struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewHTTPAnalyzer(endpoint, apiKey, model string, timeout time.Duration) *HTTPAnalyzer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPAnalyzer{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, req *Request) (*Result, error) {
	if a.endpoint == "" {
		return nil, ErrAnalyzerDisabled
	}
	if req.Model == "" {
		req.Model = a.model
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("analysis endpoint returned status %d: %s", resp.StatusCode, excerpt(data))
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if result.Summary == "" && len(result.Findings) == 0 {
		return nil, errors.New("analysis response has neither summary nor findings")
	}
	if result.Model == "" {
		result.Model = req.Model
	}
	return &result, nil
}

const excerptLimit = 200

// excerpt shortens a response body for error messages without splitting a
// UTF-8 sequence.
func excerpt(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) <= excerptLimit {
		return s
	}
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
