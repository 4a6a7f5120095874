// Package gateway submits a results file to the remote backtest service
// and decodes the entries it returns.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrStatus is returned, wrapped with the status code and the start of
// the body, when the service answers with a non-2xx status.
var ErrStatus = errors.New("gateway error status")

const maxErrorBody = 512

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient returns a client for the service at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Request names the account the backtest runs under and the record file
// to upload.
type Request struct {
	AccountID string
	FilePath  string
	Leverage  int // values below 1 mean 1
}

// Backtest uploads the record file and returns the result entries. It
// does not retry; any failure is returned to the caller as is.
func (c *Client) Backtest(ctx context.Context, req Request) ([]Result, error) {
	if req.AccountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if req.FilePath == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if req.Leverage < 1 {
		req.Leverage = 1
	}

	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/backtest", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return Parse(data)
}

func encodeForm(req Request) (io.Reader, string, error) {
	fh, err := os.Open(req.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("open results file: %w", err)
	}
	defer fh.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("jupyter_id", req.AccountID); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("leverage", strconv.Itoa(req.Leverage)); err != nil {
		return nil, "", err
	}
	part, err := mw.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, fh); err != nil {
		return nil, "", fmt.Errorf("read results file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
