package metric

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsPinned(t *testing.T) {
	content := `
# comment
requests==2.31.0
numpy~=1.24
flask>=2.0
pandas
`
	pinned, total := requirementsPinned(content)
	assert.Equal(t, 2, pinned)
	assert.Equal(t, 4, total)
}

func TestPackageJSONPinned(t *testing.T) {
	b := []byte(`{
		"dependencies": {"a": "1.2.3", "b": "^2.0.0", "c": "~3.1.0"},
		"devDependencies": {"d": "4.0.0", "e": "*"}
	}`)
	pinned, total := packageJSONPinned(b)
	assert.Equal(t, 2, pinned)
	assert.Equal(t, 5, total)

	pinned, total = packageJSONPinned([]byte("not json"))
	assert.Equal(t, 0, pinned)
	assert.Equal(t, 0, total)
}

func TestGoodPinningPractice_EmptyManifest(t *testing.T) {
	r := &resource.Resource{
		LocalPath: t.TempDir(),
		Category:  resource.CategoryCode,
	}

	res := GoodPinningPractice(context.Background(), r, Providers{})
	assert.Equal(t, 1.0, res.Score)
}

func TestGoodPinningPractice_HalfPinned(t *testing.T) {
	dir := t.TempDir()
	content := "a==1.0\nb~=2.0\nc>=3.0\nd\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(content), 0600))

	r := &resource.Resource{LocalPath: dir, Category: resource.CategoryCode}
	res := GoodPinningPractice(context.Background(), r, Providers{})
	assert.Equal(t, 0.5, res.Score)
}

func TestGoodPinningPractice_RemoteManifest(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://github.com/test/repo",
		Category: resource.CategoryCode,
	}
	p := Providers{VCS: &fakeVCS{files: map[string][]byte{
		"requirements.txt": []byte("a==1.0\nb\n"),
	}}}

	res := GoodPinningPractice(context.Background(), r, p)
	assert.Equal(t, 0.5, res.Score)
}

func TestGoodPinningPractice_HubModel(t *testing.T) {
	r := &resource.Resource{
		URL:      "https://huggingface.co/test/model",
		Category: resource.CategoryModel,
	}

	// no card data falls back to the hub default
	res := GoodPinningPractice(context.Background(), r, Providers{Hub: &fakeHub{}})
	assert.Equal(t, hubPinningDefault, res.Score)

	// pinned framework fields score proportionally
	p := Providers{Hub: &fakeHub{info: &HubInfo{CardFields: map[string]any{
		"transformers_version": "4.30.0",
		"model_type":           "bert",
	}}}}
	res = GoodPinningPractice(context.Background(), r, p)
	assert.Equal(t, 1.0, res.Score)
}
