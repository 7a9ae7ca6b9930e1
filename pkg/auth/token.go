package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/mchmarny/trustmeter/pkg/net"
	"github.com/pkg/errors"
)

const (
	deviceCodeURL = "https://github.com/login/device/code"
	accessCodeURL = "https://github.com/login/oauth/access_token"
	deviceScopes  = "" // no scopes requested (read-only public access)
	grantType     = "urn:ietf:params:oauth:grant-type:device_code"
)

type DeviceCode struct {
	// The device verification code used to verify the device.
	DeviceCode string `json:"device_code,omitempty"`
	// The user verification code displayed so the user can enter it in a browser.
	UserCode string `json:"user_code,omitempty"`
	// The verification URL where users need to enter the user_code.
	VerificationURL string `json:"verification_uri,omitempty"`
	// The number of seconds before the device_code and user_code expire.
	ExpiresInSec int `json:"expires_in,omitempty"`
	// The minimum number of seconds between access token requests.
	Interval int `json:"interval,omitempty"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	Scope       string `json:"scope,omitempty"`
}

// GetDeviceCode starts the GitHub device authorization flow.
func GetDeviceCode(ctx context.Context, clientID string) (*DeviceCode, error) {
	if clientID == "" {
		return nil, errors.New("clientID is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deviceCodeURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	q := req.URL.Query()
	q.Add("client_id", clientID)
	q.Add("scope", deviceScopes)
	req.URL.RawQuery = q.Encode()

	req.Header.Add("content-type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/json")

	client, err := net.GetHTTPClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get http client")
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body := ""
		if b, err := io.ReadAll(res.Body); err == nil {
			body = string(b)
		}
		return nil, errors.Errorf("failed to get device code: %s - %s - %s", res.Status, req.URL, body)
	}

	var dc DeviceCode
	if err := json.NewDecoder(res.Body).Decode(&dc); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	return &dc, nil
}

// GetToken exchanges an authorized device code for an access token.
func GetToken(ctx context.Context, clientID string, code *DeviceCode) (*AccessTokenResponse, error) {
	if clientID == "" {
		return nil, errors.New("clientID is required")
	}

	if code == nil {
		return nil, errors.New("device code is nil")
	}

	expiresAt := time.Now().UTC().Add(time.Duration(code.ExpiresInSec) * time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, accessCodeURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	q := req.URL.Query()
	q.Add("client_id", clientID)
	q.Add("device_code", code.DeviceCode)
	q.Add("grant_type", grantType)
	req.URL.RawQuery = q.Encode()

	req.Header.Add("content-type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/json")

	client, err := net.GetHTTPClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get http client")
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer res.Body.Close()

	var t AccessTokenResponse
	if err := json.NewDecoder(res.Body).Decode(&t); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	if time.Now().UTC().After(expiresAt) {
		return nil, errors.New("access token expired")
	}

	if t.AccessToken == "" {
		return nil, errors.New("access token is empty")
	}

	return &t, nil
}
