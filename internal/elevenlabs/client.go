// Package elevenlabs is a thin HTTP client for the ElevenLabs REST API.
//
// It is the only network egress in the server. Calls return raw audio bytes,
// decoded JSON, or a *VendorError; no retries or backoff are performed here.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

const userAgent = "mcp-elevenlabs/" + Version

// Version is the client version reported in the User-Agent header.
const Version = "1.0.0"

// Client talks to the ElevenLabs API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New creates a Client. baseURL may be empty to use the default US endpoint.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// SetHTTPClient replaces the underlying HTTP client. Used by tests to
// point the client at a stub server transport.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// do issues a request and returns the response body on 2xx. Any transport
// failure or non-2xx status becomes a *VendorError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &VendorError{Endpoint: path, Message: err.Error()}
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &VendorError{Endpoint: path, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &VendorError{Endpoint: path, StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &VendorError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.Status),
		}
	}
	return data, nil
}

// getJSON fetches path and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return decodeJSON(path, data, out)
}

// postJSON sends in as a JSON body and decodes the response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &VendorError{Endpoint: path, Message: "encoding request: " + err.Error()}
		}
		body = bytes.NewReader(data)
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(path, data, out)
}

// patchJSON sends in as a JSON body via PATCH and decodes the response into out.
func (c *Client) patchJSON(ctx context.Context, path string, in, out any) error {
	body, err := marshalBody(path, in)
	if err != nil {
		return err
	}
	data, err := c.do(ctx, http.MethodPatch, path, nil, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(path, data, out)
}

// deleteJSON issues a DELETE and decodes any JSON response into out.
func (c *Client) deleteJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return decodeJSON(path, data, out)
}

// UploadFile is one file part of a multipart request.
type UploadFile struct {
	Name string
	Data []byte
}

// postMultipart uploads files plus form fields and returns the raw response.
func (c *Client) postMultipart(ctx context.Context, path, fileField string, files []UploadFile, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return nil, &VendorError{Endpoint: path, Message: "building multipart body: " + err.Error()}
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, &VendorError{Endpoint: path, Message: "building multipart body: " + err.Error()}
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, &VendorError{Endpoint: path, Message: "building multipart body: " + err.Error()}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &VendorError{Endpoint: path, Message: "building multipart body: " + err.Error()}
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
}

func marshalBody(path string, v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &VendorError{Endpoint: path, Message: "encoding request: " + err.Error()}
	}
	return bytes.NewReader(data), nil
}

func decodeJSON(path string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &VendorError{Endpoint: path, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}
