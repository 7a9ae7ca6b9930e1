package net

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNotFound indicates the remote resource does not exist, distinct from
// a transport failure.
var ErrNotFound = errors.New("URL not found")

func getResp(ctx context.Context, url string) (*http.Response, error) {
	c, err := GetHTTPClient()
	if err != nil {
		return nil, errors.Wrap(err, "error creating HTTP client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating HTTP Get request: %s", url)
	}

	req.Header.Set("User-Agent", clientAgent)

	resp, err := c.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error executing HTTP Get request: %s", url)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, errors.Errorf("error getting %s (status: %d - %s)", url, resp.StatusCode, resp.Status)
	}

	return resp, nil
}

// GetJSON retrieves the HTTP content and decodes it into the passed target.
func GetJSON[T any](ctx context.Context, url string, target *T) error {
	resp, err := getResp(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrapf(err, "error decoding content from: %s", url)
	}
	return nil
}

// GetText retrieves the HTTP content as a string (e.g. raw README files).
func GetText(ctx context.Context, url string) (string, error) {
	resp, err := getResp(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "error reading content from: %s", url)
	}
	return string(b), nil
}
