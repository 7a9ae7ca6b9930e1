package metric

import "sort"

const (
	NameRampUpTime           = "ramp_up_time"
	NameBusFactor            = "bus_factor"
	NameLicense              = "license"
	NameDatasetAndCode       = "dataset_and_code_score"
	NameDatasetQuality       = "dataset_quality"
	NameCodeQuality          = "code_quality"
	NamePerformanceClaims    = "performance_claims"
	NameResponsiveMaintainer = "responsive_maintainer"
	NameGoodPinningPractice  = "good_pinning_practice"
	NameSizeScore            = "size_score"
)

// Registry maps metric names to implementations. NewRegistry always
// returns a fresh mapping so re-discovery (e.g. in tests) never mutates
// a shared one.
type Registry struct {
	m map[string]Func
}

// NewRegistry binds every available metric to its declared name. The table
// is an explicit init-time literal, not a runtime scan.
func NewRegistry() *Registry {
	return &Registry{
		m: map[string]Func{
			NameRampUpTime:           RampUpTime,
			NameBusFactor:            BusFactor,
			NameLicense:              License,
			NameDatasetAndCode:       DatasetAndCode,
			NameDatasetQuality:       DatasetQuality,
			NameCodeQuality:          CodeQuality,
			NamePerformanceClaims:    PerformanceClaims,
			NameResponsiveMaintainer: ResponsiveMaintainer,
			NameGoodPinningPractice:  GoodPinningPractice,
			NameSizeScore:            SizeScore,
		},
	}
}

// Register binds f to name, replacing any previous binding. Call before
// handing the registry to a pipeline; the mapping is not synchronized.
func (g *Registry) Register(name string, f Func) {
	g.m[name] = f
}

// Get returns the metric bound to name.
func (g *Registry) Get(name string) (Func, bool) {
	f, ok := g.m[name]
	return f, ok
}

// Names returns the registered metric names, sorted for stable iteration
// in output; execution order carries no meaning.
func (g *Registry) Names() []string {
	names := make([]string, 0, len(g.m))
	for n := range g.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered metrics.
func (g *Registry) Len() int {
	return len(g.m)
}
