// Package translate provides the HTTP client for the remote translation
// service.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/quadra/translator/internal/language"
)

// DefaultBaseURL is the translation service endpoint used when the
// config does not override it.
const DefaultBaseURL = "http://localhost:8000"

// RemoteError is a non-success response from the translation service.
// Error() returns the service's own description so it can be surfaced
// verbatim in the chat.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("translation service returned status %d", e.StatusCode)
}

// VoiceResult is the response of a voice translation: the translated
// text plus the text detected in the recording.
type VoiceResult struct {
	TranslatedText string `json:"translated_text"`
	DetectedText   string `json:"detected_text"`
}

// Client calls the translation service. Calls carry no client-imposed
// timeout; cancellation only happens through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A nil
// httpClient falls back to a default client without timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Text translates text into the target language.
func (c *Client) Text(ctx context.Context, text string, target language.Code) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"text":            text,
		"target_language": string(target),
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", textError(resp)
	}

	var out struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return out.TranslatedText, nil
}

// File uploads a document for translation and returns the translated
// file content.
func (c *Client) File(ctx context.Context, fileName string, content []byte, target language.Code) ([]byte, error) {
	resp, err := c.postMultipart(ctx, "/api/translate/file", "file", fileName, content, target)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, bodyError(resp)
	}

	translated, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading translated file: %w", err)
	}
	return translated, nil
}

// Image uploads an image and returns the extracted, translated text.
func (c *Client) Image(ctx context.Context, fileName string, content []byte, target language.Code) (string, error) {
	resp, err := c.postMultipart(ctx, "/api/translate/image", "image", fileName, content, target)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", bodyError(resp)
	}

	var out struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return out.TranslatedText, nil
}

// Voice uploads a recorded clip and returns the detected and translated
// text.
func (c *Client) Voice(ctx context.Context, audio []byte, target language.Code) (VoiceResult, error) {
	resp, err := c.postMultipart(ctx, "/api/translate/voice", "audio_file", "voice-message.wav", audio, target)
	if err != nil {
		return VoiceResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VoiceResult{}, bodyError(resp)
	}

	var out VoiceResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return VoiceResult{}, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

func (c *Client) postMultipart(ctx context.Context, path, field, fileName string, content []byte, target language.Code) (*http.Response, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile(field, fileName)
	if err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := w.WriteField("target_language", string(target)); err != nil {
		return nil, fmt.Errorf("writing form field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.httpClient.Do(req)
}

// textError extracts the error from a JSON {detail} body, the shape the
// text endpoint fails with.
func textError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &out); err == nil && out.Detail != "" {
		return &RemoteError{StatusCode: resp.StatusCode, Detail: out.Detail}
	}
	return &RemoteError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(data))}
}

// bodyError extracts the error as raw body text, the shape the multipart
// endpoints fail with.
func bodyError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	return &RemoteError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(data))}
}
