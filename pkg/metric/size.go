package metric

import (
	"context"
	"time"

	"github.com/mchmarny/trustmeter/pkg/resource"
)

// Hardware class keys in the size score detail.
const (
	HardwareRaspberryPi = "raspberry_pi"
	HardwareJetsonNano  = "jetson_nano"
	HardwareDesktopPC   = "desktop_pc"
	HardwareAWSServer   = "aws_server"
)

const bytesPerGB = 1 << 30

// sizeCeilingsGB holds the (min,max) GB ceiling per hardware class;
// the smallest device has the tightest ceiling.
var sizeCeilingsGB = map[string]float64{
	HardwareRaspberryPi: 1.0,
	HardwareJetsonNano:  2.0,
	HardwareDesktopPC:   6.0,
	HardwareAWSServer:   10.0,
}

// sizeFallback is the neutral profile for models whose size could not be
// determined, biased toward mid-size assumptions to avoid an unfair zero.
var sizeFallback = map[string]float64{
	HardwareRaspberryPi: 0.5,
	HardwareJetsonNano:  0.7,
	HardwareDesktopPC:   0.9,
	HardwareAWSServer:   0.95,
}

// SizeScore scores a model's total weight-file size per target hardware
// class via linear decay. Non-model resources get the zero profile so the
// rating keeps its fixed shape.
func SizeScore(ctx context.Context, r *resource.Resource, p Providers) Result {
	start := time.Now()

	if r.Category != resource.CategoryModel {
		res := Scored(0, start)
		res.Detail = map[string]float64{
			HardwareRaspberryPi: 0,
			HardwareJetsonNano:  0,
			HardwareDesktopPC:   0,
			HardwareAWSServer:   0,
		}
		return res
	}

	info := p.hubInfo(ctx, r)
	if info == nil || info.SizeBytes <= 0 {
		return sizeResult(sizeFallback, start)
	}

	gb := float64(info.SizeBytes) / bytesPerGB
	detail := make(map[string]float64, len(sizeCeilingsGB))
	for hw, max := range sizeCeilingsGB {
		detail[hw] = LinearDecay(gb, 0, max)
	}

	return sizeResult(detail, start)
}

// LinearDecay scales value into [0,1]: 1 at or below min, 0 at or above
// max, linear in between.
func LinearDecay(value, min, max float64) float64 {
	switch {
	case value <= min:
		return 1.0
	case value >= max:
		return 0.0
	}
	return 1 - (value-min)/(max-min)
}

func sizeResult(detail map[string]float64, start time.Time) Result {
	sum := 0.0
	for _, v := range detail {
		sum += v
	}

	res := Scored(sum/float64(len(detail)), start)
	res.Detail = detail
	return res
}
