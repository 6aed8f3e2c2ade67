package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Remote calls an external model server.
//
// Request:
//
//	{"instances": [[speed_diff, attack_diff, ..., type_win_score]]}
//
// Response:
//
//	{"probabilities": [[p_second, p_first]]}
type Remote struct {
	Endpoint string
	client   *http.Client
}

func NewRemote(endpoint string, timeout time.Duration) (*Remote, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid model endpoint %q", endpoint)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Remote{
		Endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (m *Remote) Name() string { return "remote" }

func (m *Remote) PredictProba(ctx context.Context, x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]any{"instances": [][]float64{x}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("model server error: status=%d, body=%s", resp.StatusCode, string(msg))
	}

	var result struct {
		Probabilities [][]float64 `json:"probabilities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Probabilities) != 1 {
		return nil, fmt.Errorf("model server returned %d rows, want 1", len(result.Probabilities))
	}
	return result.Probabilities[0], nil
}
