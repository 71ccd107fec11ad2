package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Classifier is the external image model, treated as opaque: a tensor in,
// a class index and a confidence in [0,1] out.
type Classifier interface {
	Classify(ctx context.Context, t Tensor) (classIndex int, confidence float64, err error)
}

// HTTPClassifier invokes a model server over a single POST endpoint.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, t Tensor) (int, float64, error) {
	body, err := json.Marshal(struct {
		InputSize int       `json:"inputSize"`
		Pixels    []float32 `json:"pixels"`
	}{t.Size, t.Pixels})
	if err != nil {
		return 0, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("classifier status %d", resp.StatusCode)
	}

	var out struct {
		ClassIndex int     `json:"classIndex"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("decode response: %w", err)
	}
	return out.ClassIndex, out.Confidence, nil
}
