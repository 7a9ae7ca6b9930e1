package scorer

import (
	"github.com/mchmarny/trustmeter/pkg/metric"
	"github.com/mchmarny/trustmeter/pkg/resource"
	"github.com/mchmarny/trustmeter/pkg/reviewedness"
	"github.com/mchmarny/trustmeter/pkg/treescore"
)

// SizeScore is the per-hardware-class breakdown of the size metric.
type SizeScore struct {
	RaspberryPi float64 `json:"raspberry_pi" yaml:"raspberry_pi"`
	JetsonNano  float64 `json:"jetson_nano" yaml:"jetson_nano"`
	DesktopPC   float64 `json:"desktop_pc" yaml:"desktop_pc"`
	AWSServer   float64 `json:"aws_server" yaml:"aws_server"`
}

// Rating is the assembled scoring output for one resource. The shape is
// fixed: every field is always present, with inapplicable history and
// lineage scores carrying the -1 sentinel. Immutable after assembly and
// safe to cache keyed by artifact identity.
type Rating struct {
	Name     string            `json:"name" yaml:"name"`
	Category resource.Category `json:"category" yaml:"category"`

	NetScore        float64 `json:"net_score" yaml:"net_score"`
	NetScoreLatency int64   `json:"net_score_latency" yaml:"net_score_latency"`

	RampUpTime        float64 `json:"ramp_up_time" yaml:"ramp_up_time"`
	RampUpTimeLatency int64   `json:"ramp_up_time_latency" yaml:"ramp_up_time_latency"`

	BusFactor        float64 `json:"bus_factor" yaml:"bus_factor"`
	BusFactorLatency int64   `json:"bus_factor_latency" yaml:"bus_factor_latency"`

	License        float64 `json:"license" yaml:"license"`
	LicenseLatency int64   `json:"license_latency" yaml:"license_latency"`

	DatasetAndCodeScore        float64 `json:"dataset_and_code_score" yaml:"dataset_and_code_score"`
	DatasetAndCodeScoreLatency int64   `json:"dataset_and_code_score_latency" yaml:"dataset_and_code_score_latency"`

	DatasetQuality        float64 `json:"dataset_quality" yaml:"dataset_quality"`
	DatasetQualityLatency int64   `json:"dataset_quality_latency" yaml:"dataset_quality_latency"`

	CodeQuality        float64 `json:"code_quality" yaml:"code_quality"`
	CodeQualityLatency int64   `json:"code_quality_latency" yaml:"code_quality_latency"`

	PerformanceClaims        float64 `json:"performance_claims" yaml:"performance_claims"`
	PerformanceClaimsLatency int64   `json:"performance_claims_latency" yaml:"performance_claims_latency"`

	ResponsiveMaintainer        float64 `json:"responsive_maintainer" yaml:"responsive_maintainer"`
	ResponsiveMaintainerLatency int64   `json:"responsive_maintainer_latency" yaml:"responsive_maintainer_latency"`

	GoodPinningPractice        float64 `json:"good_pinning_practice" yaml:"good_pinning_practice"`
	GoodPinningPracticeLatency int64   `json:"good_pinning_practice_latency" yaml:"good_pinning_practice_latency"`

	SizeScore        SizeScore `json:"size_score" yaml:"size_score"`
	SizeScoreLatency int64     `json:"size_score_latency" yaml:"size_score_latency"`

	Reviewedness        float64 `json:"reviewedness" yaml:"reviewedness"`
	ReviewednessLatency int64   `json:"reviewedness_latency" yaml:"reviewedness_latency"`

	TreeScore        float64 `json:"tree_score" yaml:"tree_score"`
	TreeScoreLatency int64   `json:"tree_score_latency" yaml:"tree_score_latency"`
}

// assemble packages metric outputs, the history and lineage analyses, and
// the net score into a Rating. Metrics missing from the result map land
// as zero scores so the output shape never varies.
func assemble(res *resource.Resource, results map[string]metric.Result, rev reviewedness.Result, tree treescore.Result, net float64, netLatency int64) *Rating {
	get := func(name string) metric.Result {
		return results[name]
	}

	rampUp := get(metric.NameRampUpTime)
	busFactor := get(metric.NameBusFactor)
	license := get(metric.NameLicense)
	datasetAndCode := get(metric.NameDatasetAndCode)
	datasetQuality := get(metric.NameDatasetQuality)
	codeQuality := get(metric.NameCodeQuality)
	claims := get(metric.NamePerformanceClaims)
	responsive := get(metric.NameResponsiveMaintainer)
	pinning := get(metric.NameGoodPinningPractice)
	size := get(metric.NameSizeScore)

	return &Rating{
		Name:     res.Name,
		Category: res.Category,

		NetScore:        net,
		NetScoreLatency: netLatency,

		RampUpTime:        rampUp.Score,
		RampUpTimeLatency: rampUp.Latency,

		BusFactor:        busFactor.Score,
		BusFactorLatency: busFactor.Latency,

		License:        license.Score,
		LicenseLatency: license.Latency,

		DatasetAndCodeScore:        datasetAndCode.Score,
		DatasetAndCodeScoreLatency: datasetAndCode.Latency,

		DatasetQuality:        datasetQuality.Score,
		DatasetQualityLatency: datasetQuality.Latency,

		CodeQuality:        codeQuality.Score,
		CodeQualityLatency: codeQuality.Latency,

		PerformanceClaims:        claims.Score,
		PerformanceClaimsLatency: claims.Latency,

		ResponsiveMaintainer:        responsive.Score,
		ResponsiveMaintainerLatency: responsive.Latency,

		GoodPinningPractice:        pinning.Score,
		GoodPinningPracticeLatency: pinning.Latency,

		SizeScore: SizeScore{
			RaspberryPi: size.Detail[metric.HardwareRaspberryPi],
			JetsonNano:  size.Detail[metric.HardwareJetsonNano],
			DesktopPC:   size.Detail[metric.HardwareDesktopPC],
			AWSServer:   size.Detail[metric.HardwareAWSServer],
		},
		SizeScoreLatency: size.Latency,

		Reviewedness:        rev.Value(),
		ReviewednessLatency: rev.Latency,

		TreeScore:        tree.Value(),
		TreeScoreLatency: tree.Latency,
	}
}
