package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ImageHostClient uploads image buffers to the external hosting provider and
// returns the public URL. Endpoint and credentials come from the company
// settings row, so they are passed per call rather than held on the client.
type ImageHostClient struct {
	httpClient *http.Client
}

// NewImageHostClient builds a client with a bounded request timeout.
func NewImageHostClient(timeout time.Duration) *ImageHostClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ImageHostClient{httpClient: &http.Client{Timeout: timeout}}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends the binary buffer as a multipart form and returns the hosted URL.
func (c *ImageHostClient) Upload(ctx context.Context, endpoint, apiKey, filename string, data []byte) (string, error) {
	if endpoint == "" {
		return "", errors.New("image host endpoint not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode image host response: %w", err)
	}
	if parsed.URL == "" {
		return "", errors.New("image host response missing url")
	}
	return parsed.URL, nil
}
