package enrichment

import (
	"fmt"
	"math"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
)

const (
	CapacityLow      = "low"
	CapacityModerate = "moderate"
	CapacityHigh     = "high"

	recoveryBaseline = 5
)

type RecoveryProfile struct {
	Score          int      `json:"score"`
	Capacity       string   `json:"capacity"`
	VolumeModifier float64  `json:"volumeModifier"`
	Factors        []string `json:"factors"`
	Narrative      string   `json:"narrative"`
}

var stressDelta = map[string]int{
	"very_high": -3,
	"high":      -2,
	"moderate":  0,
	"low":       1,
}

var sleepQualityDelta = map[string]int{
	"excellent": 2,
	"good":      1,
	"fair":      0,
	"poor":      -2,
}

// SynthesizeRecoveryProfile scores recovery from a baseline of 5 and maps the
// score onto a capacity tier and volume modifier.
func SynthesizeRecoveryProfile(rec plan.Recovery, av plan.Availability) RecoveryProfile {
	score := recoveryBaseline
	switch {
	case rec.SleepHours >= 8:
		score += 2
	case rec.SleepHours >= 7:
		score++
	case rec.SleepHours < 6:
		score -= 2
	}
	score += sleepQualityDelta[rec.SleepQuality]
	score += stressDelta[rec.StressLevel]
	switch rec.RecoveryCapacity {
	case "high":
		score += 2
	case "low":
		score -= 2
	}
	if av.DaysPerWeek >= 5 {
		score--
	}

	p := RecoveryProfile{Score: score}
	switch {
	case score <= 4:
		p.Capacity, p.VolumeModifier = CapacityLow, 0.75
	case score >= 7:
		p.Capacity, p.VolumeModifier = CapacityHigh, 1.2
	default:
		p.Capacity, p.VolumeModifier = CapacityModerate, 1.0
	}

	if rec.SleepHours < 6 || rec.SleepHours >= 8 {
		p.Factors = append(p.Factors, fmt.Sprintf("%s hours of sleep per night", trimFloat(rec.SleepHours)))
	}
	if rec.SleepQuality == "poor" || rec.SleepQuality == "fair" {
		p.Factors = append(p.Factors, rec.SleepQuality+" sleep quality")
	}
	if rec.StressLevel == "high" || rec.StressLevel == "very_high" {
		p.Factors = append(p.Factors, strings.ReplaceAll(rec.StressLevel, "_", "-")+" stress")
	}
	if av.DaysPerWeek >= 5 {
		p.Factors = append(p.Factors, fmt.Sprintf("high training frequency (%d days/week)", av.DaysPerWeek))
	}

	p.Narrative = fmt.Sprintf("Recovery capacity is %s (score %d, volume modifier %.2f).", p.Capacity, p.Score, p.VolumeModifier)
	if len(p.Factors) > 0 {
		p.Narrative += " Contributing factors: " + strings.Join(p.Factors, ", ") + "."
	} else {
		p.Narrative += " No notable sleep, stress or frequency factors were reported."
	}
	return p
}

var baseWeeklySets = map[plan.Level]int{
	plan.LevelBeginner:     10,
	plan.LevelIntermediate: 14,
	plan.LevelAdvanced:     20,
}

// CalculateMaxSetsPerWeek scales the per-muscle weekly set ceiling by the
// recovery modifier. Unknown levels use the intermediate base.
func CalculateMaxSetsPerWeek(p RecoveryProfile, level plan.Level) int {
	base, ok := baseWeeklySets[level]
	if !ok {
		base = baseWeeklySets[plan.LevelIntermediate]
	}
	mod := p.VolumeModifier
	if mod == 0 {
		mod = 1
	}
	return int(math.Round(float64(base) * mod))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
