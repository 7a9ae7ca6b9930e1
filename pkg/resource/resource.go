package resource

import (
	"fmt"
	"net/url"
	"strings"
)

// Category identifies the kind of artifact being rated.
type Category string

const (
	CategoryModel   Category = "MODEL"
	CategoryDataset Category = "DATASET"
	CategoryCode    Category = "CODE"
)

// Resource is the normalized unit of work for scoring. Category must be
// set before metrics execute; metrics branch on these fields rather than
// re-deriving them from the URL.
type Resource struct {
	URL       string   `json:"url,omitempty" yaml:"url,omitempty"`
	Name      string   `json:"name" yaml:"name"`
	Category  Category `json:"category" yaml:"category"`
	LocalPath string   `json:"local_path,omitempty" yaml:"local_path,omitempty"`
}

func (r *Resource) HasURL() bool {
	return r != nil && r.URL != ""
}

func (r *Resource) HasLocalPath() bool {
	return r != nil && r.LocalPath != ""
}

// ID returns the identity under which a rating for this resource is cached.
func (r *Resource) ID() string {
	if r.Name != "" {
		return fmt.Sprintf("%s/%s", strings.ToLower(string(r.Category)), r.Name)
	}
	return fmt.Sprintf("%s/%s", strings.ToLower(string(r.Category)), r.URL)
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(CategoryModel):
		return CategoryModel, nil
	case string(CategoryDataset):
		return CategoryDataset, nil
	case string(CategoryCode):
		return CategoryCode, nil
	}
	return "", fmt.Errorf("invalid category: %s", s)
}

// Classify maps a raw source locator to a Category. Used only when the
// category is not already known.
func Classify(rawURL string) Category {
	u, err := url.Parse(rawURL)
	if err != nil {
		return CategoryCode
	}

	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")

	if strings.HasSuffix(host, "huggingface.co") {
		if strings.HasPrefix(path, "datasets/") {
			return CategoryDataset
		}
		return CategoryModel
	}

	return CategoryCode
}

// HubID extracts the hub identifier (org/name) from a hub URL, falling
// back to the resource name when the URL is not hub-shaped.
func (r *Resource) HubID() string {
	if i := strings.Index(r.URL, "huggingface.co/"); r.HasURL() && i >= 0 {
		id := r.URL[i+len("huggingface.co/"):]
		id = strings.TrimPrefix(id, "datasets/")
		id = strings.Trim(id, "/")
		if i := strings.Index(id, "/tree/"); i > 0 {
			id = id[:i]
		}
		if id != "" {
			return id
		}
	}
	return r.Name
}

// RepoOwner extracts the owner and repo from a VCS repository URL.
func (r *Resource) RepoOwner() (owner, repo string, ok bool) {
	if !r.HasURL() {
		return "", "", false
	}

	u, err := url.Parse(r.URL)
	if err != nil || !strings.HasSuffix(strings.ToLower(u.Hostname()), "github.com") {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
