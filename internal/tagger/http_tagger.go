package tagger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/port"
)

const (
	maxLabels     = 10
	minConfidence = 0.5
)

// HTTPTagger calls an external vision-labelling API over JSON.
type HTTPTagger struct {
	endpoint string
	apiKey   string

	httpClient *http.Client
}

// compile-time check: *HTTPTagger must satisfy port.Tagger
var _ port.Tagger = (*HTTPTagger)(nil)

func NewHTTPTagger(endpoint, apiKey string) *HTTPTagger {
	return &HTTPTagger{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type labelRequest struct {
	Image     string `json:"image"`
	MimeType  string `json:"mime_type"`
	MaxLabels int    `json:"max_labels"`
}

type labelResponse struct {
	Labels []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"labels"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (t *HTTPTagger) Labels(ctx context.Context, imageData []byte, mimeType string) ([]string, error) {
	if t.endpoint == "" {
		return nil, fmt.Errorf("tagger: endpoint not configured")
	}

	reqBody, err := json.Marshal(labelRequest{
		Image:     base64.StdEncoding.EncodeToString(imageData),
		MimeType:  mimeType,
		MaxLabels: maxLabels,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tagger: unexpected status %d", resp.StatusCode)
	}

	var payload labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("tagger error: %s", payload.Error.Message)
	}

	seen := make(map[string]bool)
	labels := make([]string, 0, len(payload.Labels))
	for _, l := range payload.Labels {
		name := strings.ToLower(strings.TrimSpace(l.Name))
		if name == "" || l.Confidence < minConfidence || seen[name] {
			continue
		}
		seen[name] = true
		labels = append(labels, name)
	}
	return labels, nil
}
