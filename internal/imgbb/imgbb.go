// Package imgbb uploads profile and product photos to the ImgBB hosting
// service. Upload failure is treated as non-fatal by every caller: the flow
// continues without a photo.
package imgbb

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultUploadURL = "https://api.imgbb.com/1/upload"

type Uploader struct {
	apiKey     string
	uploadURL  string
	httpClient *http.Client
}

type Option func(*Uploader)

func WithUploadURL(url string) Option {
	return func(u *Uploader) { u.uploadURL = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(u *Uploader) { u.httpClient = hc }
}

func New(apiKey string, opts ...Option) *Uploader {
	u := &Uploader{
		apiKey:     apiKey,
		uploadURL:  defaultUploadURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload sends the image bytes and returns the hosted display URL.
func (u *Uploader) Upload(ctx context.Context, name string, image []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("key", u.apiKey); err != nil {
		return "", fmt.Errorf("imgbb: building form: %w", err)
	}
	if err := mw.WriteField("name", name); err != nil {
		return "", fmt.Errorf("imgbb: building form: %w", err)
	}
	if err := mw.WriteField("image", base64.StdEncoding.EncodeToString(image)); err != nil {
		return "", fmt.Errorf("imgbb: building form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("imgbb: building form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("imgbb: building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgbb: upload: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("imgbb: reading response: %w", err)
	}

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			DisplayURL string `json:"display_url"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("imgbb: decoding response: %w", err)
	}
	if !payload.Success {
		return "", fmt.Errorf("imgbb: upload rejected: %s", payload.Error.Message)
	}
	return payload.Data.DisplayURL, nil
}
