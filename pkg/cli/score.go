package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mchmarny/trustmeter/pkg/auth"
	"github.com/mchmarny/trustmeter/pkg/gh"
	"github.com/mchmarny/trustmeter/pkg/gitrepo"
	"github.com/mchmarny/trustmeter/pkg/hub"
	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/mchmarny/trustmeter/pkg/scorer"
	"github.com/urfave/cli/v2"
)

var (
	urlFlag = &cli.StringFlag{
		Name:     "url",
		Usage:    "URL of the artifact to score (GitHub repo or Hugging Face model/dataset)",
		Required: true,
	}

	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Artifact name (optional, derived from the URL when not set)",
	}

	categoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Artifact category [MODEL, DATASET, CODE] (optional, derived from the URL when not set)",
	}

	parentFlag = &cli.StringSliceFlag{
		Name:  "parent",
		Usage: "Declared parent artifact as 'id' or 'id=score' (repeatable)",
	}

	noCacheFlag = &cli.BoolFlag{
		Name:  "no-cache",
		Usage: "Skip the rating cache for both read and write (optional, default: false)",
	}

	scoreCmd = &cli.Command{
		Name:            "score",
		HideHelpCommand: true,
		Usage:           "Score the trustworthiness of a single artifact",
		Flags: []cli.Flag{
			urlFlag,
			nameFlag,
			categoryFlag,
			parentFlag,
			noCacheFlag,
		},
		Action: cmdScore,
	}
)

func cmdScore(c *cli.Context) error {
	cfg := getConfig(c)

	res, err := makeResource(c.String(urlFlag.Name), c.String(nameFlag.Name), c.String(categoryFlag.Name))
	if err != nil {
		return err
	}

	lineage, err := parseLineage(c.StringSlice(parentFlag.Name))
	if err != nil {
		return err
	}

	useCache := !c.Bool(noCacheFlag.Name)
	if useCache {
		if r, ok, err := cfg.Store.Get(res.ID()); err != nil {
			slog.Warn("cache read failed", "id", res.ID(), "error", err)
		} else if ok {
			slog.Debug("rating served from cache", "id", res.ID())
			return encode(r)
		}
	}

	token, err := auth.Token(cfg.HomeDir)
	if err != nil {
		slog.Debug("no GitHub token, using unauthenticated API limits", "error", err)
	}

	providers := metric.Providers{
		VCS: gh.New(c.Context, token),
		Hub: hub.New(),
	}

	p := scorer.New(metric.NewRegistry(), providers,
		scorer.WithTimeout(cfg.Conf.MetricTimeout()),
		scorer.WithCloneTimeout(cfg.Conf.CloneTimeout()),
		scorer.WithWorkers(cfg.Conf.Workers()),
		scorer.WithCloner(gitrepo.Git{}),
	)

	rating := p.Rate(c.Context, res, lineage)

	if useCache {
		if err := cfg.Store.Put(res.ID(), rating); err != nil {
			slog.Warn("cache write failed", "id", res.ID(), "error", err)
		}
	}

	return encode(rating)
}

func makeResource(rawURL, name, category string) (*resource.Resource, error) {
	res := &resource.Resource{URL: rawURL}

	if category != "" {
		cat, err := resource.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		res.Category = cat
	} else {
		res.Category = resource.Classify(rawURL)
	}

	if name != "" {
		res.Name = name
	} else {
		res.Name = nameFromURL(rawURL)
	}
	return res, nil
}

// nameFromURL derives an artifact name from the last URL path segment.
func nameFromURL(rawURL string) string {
	s := strings.TrimSuffix(strings.TrimSuffix(rawURL, "/"), ".git")
	if i := strings.Index(s, "/tree/"); i > 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// parseLineage turns repeated parent declarations into a Lineage. Each
// entry is either a bare parent ID or 'id=score' with score in [0,1].
func parseLineage(entries []string) (*scorer.Lineage, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	l := &scorer.Lineage{
		Scores: make(map[string]float64),
	}
	for _, e := range entries {
		id, val, found := strings.Cut(e, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("invalid parent entry: %q", e)
		}
		l.Parents = append(l.Parents, id)
		if !found {
			continue
		}
		s, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parent score in %q: %w", e, err)
		}
		l.Scores[id] = s
	}
	return l, nil
}
