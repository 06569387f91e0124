package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"cityhelp-be/logger"
	"cityhelp-be/metrics"
)

// maxResponseBytes caps how much of a classifier response is read.
const maxResponseBytes = 1 << 20

type label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func newBreaker(name string) *gobreaker.CircuitBreaker[string] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("classifier circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// textClient calls a hosted text-classification model (Hugging Face
// inference API shape: {"inputs": text} -> [[{label, score}]]).
type textClient struct {
	endpoint string
	token    string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
}

func (c *textClient) classify(ctx context.Context, text string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		body, err := json.Marshal(map[string]string{"inputs": text})
		if err != nil {
			return "", err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		raw, err := do(c.http, req)
		if err != nil {
			return "", err
		}
		return topLabel(raw)
	})
}

// topLabel accepts both the nested ([[...]]) and flat ([...]) response forms.
func topLabel(raw []byte) (string, error) {
	var nested [][]label
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return best(nested[0])
	}
	var flat []label
	if err := json.Unmarshal(raw, &flat); err != nil {
		return "", fmt.Errorf("decode classifier response: %w", err)
	}
	return best(flat)
}

func best(labels []label) (string, error) {
	var top *label
	for i := range labels {
		if labels[i].Label == "" {
			continue
		}
		if top == nil || labels[i].Score > top.Score {
			top = &labels[i]
		}
	}
	if top == nil {
		return "", fmt.Errorf("classifier returned no labels")
	}
	return top.Label, nil
}

// imageClient posts the image as multipart field "image" and reads
// {"category": ...} back.
type imageClient struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
}

func (c *imageClient) classify(ctx context.Context, image []byte, filename string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", filename)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(image); err != nil {
			return "", err
		}
		if err := w.Close(); err != nil {
			return "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())

		raw, err := do(c.http, req)
		if err != nil {
			return "", err
		}

		var out struct {
			Category string `json:"category"`
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", fmt.Errorf("decode image classifier response: %w", err)
		}
		if out.Category == "" {
			return DefaultCategory, nil
		}
		return out.Category, nil
	})
}

func do(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("classifier responded %d", resp.StatusCode)
	}
	return raw, nil
}
