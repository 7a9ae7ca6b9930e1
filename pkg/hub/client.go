// Package hub implements the model-hub data provider over the Hugging
// Face Hub HTTP API. Every metadata field is optional; absence is never
// an error.
package hub

import (
	"context"
	"fmt"
	"time"

	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/net"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://huggingface.co"

// Client is a read-only hub data provider satisfying metric.HubProvider.
type Client struct {
	baseURL string
}

// New creates a provider against the public hub.
func New() *Client {
	return &Client{baseURL: defaultBaseURL}
}

// NewWithBaseURL creates a provider against a different endpoint (tests).
func NewWithBaseURL(u string) *Client {
	return &Client{baseURL: u}
}

// modelResponse mirrors the subset of the hub API payload the metrics
// read. Sibling sizes are only present when requested with blobs=true.
type modelResponse struct {
	ID           string         `json:"id"`
	Downloads    int            `json:"downloads"`
	Likes        int            `json:"likes"`
	LastModified time.Time      `json:"lastModified"`
	CardData     map[string]any `json:"cardData"`
	Siblings     []struct {
		Filename string `json:"rfilename"`
		Size     int64  `json:"size"`
	} `json:"siblings"`
	SafeTensors *struct {
		Total int64 `json:"total"`
	} `json:"safetensors"`
}

// ModelInfo fetches model metadata by hub identifier (org/name).
func (c *Client) ModelInfo(ctx context.Context, id string) (*metric.HubInfo, error) {
	return c.info(ctx, fmt.Sprintf("%s/api/models/%s?blobs=true", c.baseURL, id))
}

// DatasetInfo fetches dataset metadata by hub identifier.
func (c *Client) DatasetInfo(ctx context.Context, id string) (*metric.HubInfo, error) {
	return c.info(ctx, fmt.Sprintf("%s/api/datasets/%s?blobs=true", c.baseURL, id))
}

// Readme fetches the raw model card. A missing card is ("", false, nil).
func (c *Client) Readme(ctx context.Context, id string) (string, bool, error) {
	u := fmt.Sprintf("%s/%s/raw/main/README.md", c.baseURL, id)
	s, err := net.GetText(ctx, u)
	if err != nil {
		if errors.Is(err, net.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s, true, nil
}

func (c *Client) info(ctx context.Context, url string) (*metric.HubInfo, error) {
	var m modelResponse
	if err := net.GetJSON(ctx, url, &m); err != nil {
		return nil, errors.Wrapf(err, "error getting hub metadata: %s", url)
	}

	info := &metric.HubInfo{
		ID:           m.ID,
		Downloads:    m.Downloads,
		Likes:        m.Likes,
		LastModified: m.LastModified,
		CardFields:   m.CardData,
	}

	for _, s := range m.Siblings {
		info.Files = append(info.Files, s.Filename)
	}

	// Prefer the reported tensor total; fall back to summing weight files.
	if m.SafeTensors != nil && m.SafeTensors.Total > 0 {
		info.SizeBytes = m.SafeTensors.Total
	} else {
		for _, s := range m.Siblings {
			if isWeightFile(s.Filename) {
				info.SizeBytes += s.Size
			}
		}
	}

	return info, nil
}

var weightExtensions = []string{".safetensors", ".bin", ".pt", ".pth", ".onnx", ".h5", ".ckpt", ".gguf", ".msgpack"}

func isWeightFile(name string) bool {
	for _, ext := range weightExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return true
		}
	}
	return false
}
