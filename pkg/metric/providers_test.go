package metric

import (
	"context"

	"github.com/pkg/errors"
)

type fakeVCS struct {
	contributors []Contributor
	issues       []Issue
	files        map[string][]byte
	license      string
	err          error
}

func (f *fakeVCS) Contributors(_ context.Context, _, _ string) ([]Contributor, error) {
	return f.contributors, f.err
}

func (f *fakeVCS) ClosedIssues(_ context.Context, _, _ string, _ int) ([]Issue, error) {
	return f.issues, f.err
}

func (f *fakeVCS) FileContent(_ context.Context, _, _, path string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	b, ok := f.files[path]
	return b, ok, nil
}

func (f *fakeVCS) License(_ context.Context, _, _ string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	return f.license, f.license != "", nil
}

type fakeHub struct {
	info   *HubInfo
	readme string
	err    error
}

func (f *fakeHub) ModelInfo(_ context.Context, _ string) (*HubInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.info == nil {
		return nil, errors.New("not found")
	}
	return f.info, nil
}

func (f *fakeHub) DatasetInfo(ctx context.Context, id string) (*HubInfo, error) {
	return f.ModelInfo(ctx, id)
}

func (f *fakeHub) Readme(_ context.Context, _ string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	return f.readme, f.readme != "", nil
}
