package plan

// GeneratedPlan is recreated on every request and never persisted.
type GeneratedPlan struct {
	PlanName            string       `json:"planName"`
	Overview            string       `json:"overview"`
	WeeklyStructure     string       `json:"weeklyStructure"`
	Days                []WorkoutDay `json:"days"`
	ProgressionGuidance string       `json:"progressionGuidance"`
	NutritionNotes      string       `json:"nutritionNotes"`
	RecoveryNotes       string       `json:"recoveryNotes"`
	Disclaimer          string       `json:"disclaimer"`
}

type WorkoutDay struct {
	DayNumber int        `json:"dayNumber"`
	Name      string     `json:"name"`
	Focus     string     `json:"focus"`
	Duration  string     `json:"duration"`
	Warmup    Block      `json:"warmup"`
	Exercises []Exercise `json:"exercises"`
	Cooldown  Block      `json:"cooldown"`
}

// Block is a warmup or cooldown: a short description plus movement names.
type Block struct {
	Description string   `json:"description"`
	Exercises   []string `json:"exercises"`
}

type Exercise struct {
	Name            string   `json:"name"`
	Sets            int      `json:"sets"`
	Reps            string   `json:"reps"`
	Rest            string   `json:"rest"`
	Intent          string   `json:"intent"`
	Rationale       string   `json:"rationale"`
	Notes           string   `json:"notes"`
	Substitutions   []string `json:"substitutions"`
	ProgressionNote string   `json:"progressionNote"`
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (p *GeneratedPlan) Clone() *GeneratedPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Days = make([]WorkoutDay, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.clone()
	}
	return &out
}

func (d WorkoutDay) clone() WorkoutDay {
	out := d
	out.Warmup.Exercises = cloneStrings(d.Warmup.Exercises)
	out.Cooldown.Exercises = cloneStrings(d.Cooldown.Exercises)
	out.Exercises = make([]Exercise, len(d.Exercises))
	for i, ex := range d.Exercises {
		ex.Substitutions = cloneStrings(ex.Substitutions)
		out.Exercises[i] = ex
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ExerciseNames lists every exercise name across all days in order.
func (p *GeneratedPlan) ExerciseNames() []string {
	var out []string
	for _, d := range p.Days {
		for _, ex := range d.Exercises {
			out = append(out, ex.Name)
		}
	}
	return out
}
