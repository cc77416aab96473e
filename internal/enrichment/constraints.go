package enrichment

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

const (
	FactorInjury    = "injury"
	FactorRecovery  = "recovery"
	FactorTime      = "time"
	FactorEquipment = "equipment"
	FactorNone      = "none"
)

type ConstraintAnalysis struct {
	PrimaryFactor string `json:"primaryFactor"`
	Impact        string `json:"impact"`
}

var timeConstraintKeywords = []string{"time", "busy", "schedule", "short session", "quick"}

// AnalyzeConstraints picks the single most limiting factor. Checks run in a
// fixed priority order and the first hit wins.
func AnalyzeConstraints(q plan.Questionnaire) ConstraintAnalysis {
	current := q.Injuries.Current
	var high []string
	for _, inj := range current {
		if inj.Severity == plan.SeverityHigh {
			high = append(high, inj.Area)
		}
	}
	if len(high) > 0 || len(current) >= 2 {
		return ConstraintAnalysis{
			PrimaryFactor: FactorInjury,
			Impact: fmt.Sprintf("Injury management is the primary constraint (%s). Exercise selection avoids loading the affected areas and favors controlled, pain-free ranges.",
				describeInjuries(current)),
		}
	}

	rp := SynthesizeRecoveryProfile(q.Recovery, q.Availability)
	if rp.Capacity == CapacityLow {
		return ConstraintAnalysis{
			PrimaryFactor: FactorRecovery,
			Impact: fmt.Sprintf("Recovery is the primary constraint (score %d). Weekly volume is scaled to %.0f%% of standard and hard sets are kept away from failure.",
				rp.Score, rp.VolumeModifier*100),
		}
	}

	av := q.Availability
	if av.SessionDuration < 45 || av.DaysPerWeek <= 2 || matching.ContainsAny(q.Constraints.Notes, timeConstraintKeywords) {
		return ConstraintAnalysis{
			PrimaryFactor: FactorTime,
			Impact: fmt.Sprintf("Time is the primary constraint (%d days x %d minutes). Sessions prioritize compound lifts and pair accessories to fit the window.",
				av.DaysPerWeek, av.SessionDuration),
		}
	}

	if equipmentLimited(q.Equipment) {
		return ConstraintAnalysis{
			PrimaryFactor: FactorEquipment,
			Impact: fmt.Sprintf("Equipment is the primary constraint (%s). Exercises are chosen for the tools on hand and progressed with tempo, pauses and reps.",
				describeEquipment(q.Equipment)),
		}
	}

	for _, inj := range current {
		if inj.Severity == plan.SeverityMedium {
			return ConstraintAnalysis{
				PrimaryFactor: FactorInjury,
				Impact: fmt.Sprintf("A moderate injury needs management (%s). Loading around the area is progressed conservatively.",
					describeInjuries(current)),
			}
		}
	}

	return ConstraintAnalysis{
		PrimaryFactor: FactorNone,
		Impact:        "No major constraints were identified; the program follows standard progression.",
	}
}

func equipmentLimited(eq plan.Equipment) bool {
	if len(eq.Limited) > 0 {
		return true
	}
	if !eq.GymAccess && (eq.GymType == "" || eq.GymType == "none") && len(eq.Available) == 0 {
		return true
	}
	home := !eq.GymAccess || eq.GymType == "home" || eq.GymType == "garage"
	return home && len(eq.Available) < 5
}

func describeInjuries(in []plan.Injury) string {
	parts := make([]string, 0, len(in))
	for _, inj := range in {
		parts = append(parts, fmt.Sprintf("%s, %s severity", inj.Area, inj.Severity))
	}
	return strings.Join(parts, "; ")
}

func describeEquipment(eq plan.Equipment) string {
	switch {
	case len(eq.Available) == 0 && !eq.GymAccess:
		return "bodyweight only"
	case len(eq.Limited) > 0:
		return "limited: " + strings.Join(eq.Limited, ", ")
	default:
		return fmt.Sprintf("%d items: %s", len(eq.Available), strings.Join(eq.Available, ", "))
	}
}
