package scorer

import (
	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/reviewedness"
	"github.com/mchmarny/trustmeter/pkg/treescore"
)

// Aggregator input keys produced outside the metric registry.
const (
	NameReviewedness    = "reviewedness"
	NameTreeScore       = "treescore"
	NameReproducibility = "reproducibility"
)

// netWeights is the fixed weight table over the aggregated metric subset.
// Metrics absent from the input contribute to neither the numerator nor
// the denominator, so the output scale holds as the input set varies.
var netWeights = map[string]float64{
	metric.NameRampUpTime:        0.15,
	metric.NameBusFactor:         0.15,
	metric.NameLicense:           0.20,
	metric.NameDatasetAndCode:    0.10,
	metric.NameDatasetQuality:    0.10,
	metric.NameCodeQuality:       0.15,
	metric.NamePerformanceClaims: 0.15,
	NameReproducibility:          0.10,
	NameReviewedness:             0.10,
	NameTreeScore:                0.10,
}

// NetScore folds raw metric scores into one weighted composite in [0,1].
// Every input is clamped to [0,1] before weighting. Names without a
// weight are ignored. An empty mapping yields exactly 0.
func NetScore(scores map[string]float64) float64 {
	var num, den float64
	for name, w := range netWeights {
		v, ok := scores[name]
		if !ok {
			continue
		}
		num += metric.Clamp(v) * w
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// netInputs builds the aggregator input from pipeline outputs. History and
// lineage scores join only when applicable; the sentinel never leaks in.
func netInputs(results map[string]metric.Result, rev reviewedness.Result, tree treescore.Result) map[string]float64 {
	in := make(map[string]float64, len(results)+2)
	for name, r := range results {
		if !r.Applicable {
			continue
		}
		in[name] = r.Score
	}
	if rev.Applicable {
		in[NameReviewedness] = rev.Score
	}
	if tree.Applicable {
		in[NameTreeScore] = tree.Score
	}
	return in
}
