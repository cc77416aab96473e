package plan

type Goal string

const (
	GoalStrength       Goal = "strength"
	GoalMuscleBuilding Goal = "muscle_building"
	GoalFatLoss        Goal = "fat_loss"
	GoalEndurance      Goal = "endurance"
	GoalSportSpecific  Goal = "sport_specific"
	GoalGeneralFitness Goal = "general_fitness"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Questionnaire is the immutable per-request input. JSON names match the
// client's stored draft so a saved draft can be posted back unchanged.
type Questionnaire struct {
	Goals        Goals        `json:"goals"`
	Experience   Experience   `json:"experience"`
	Availability Availability `json:"availability"`
	Equipment    Equipment    `json:"equipment"`
	Injuries     Injuries     `json:"injuries"`
	Recovery     Recovery     `json:"recovery"`
	Nutrition    Nutrition    `json:"nutrition"`
	Preferences  Preferences  `json:"preferences"`
	Constraints  Constraints  `json:"constraints"`
}

type Goals struct {
	PrimaryGoal     Goal     `json:"primaryGoal" validate:"required,oneof=strength muscle_building fat_loss endurance sport_specific general_fitness"`
	SecondaryGoal   Goal     `json:"secondaryGoal,omitempty" validate:"omitempty,oneof=strength muscle_building fat_loss endurance sport_specific general_fitness"`
	Timeframe       string   `json:"timeframe,omitempty" validate:"omitempty,oneof=4_weeks 8_weeks 12_weeks 6_months 1_year ongoing"`
	SpecificTargets string   `json:"specificTargets,omitempty" validate:"max=2000"`
	SportDetail     string   `json:"sportDetail,omitempty" validate:"max=500"`
	WeakPoints      []string `json:"weakPoints,omitempty" validate:"max=12,dive,max=120"`
}

type Experience struct {
	YearsTraining float64       `json:"yearsTraining" validate:"gte=0,lte=70"`
	Level         Level         `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Consistency   string        `json:"consistency,omitempty" validate:"omitempty,oneof=inconsistent somewhat_consistent consistent very_consistent"`
	BodyWeightKg  *float64      `json:"bodyWeightKg,omitempty" validate:"omitempty,gt=25,lt=350"`
	CurrentLifts  *CurrentLifts `json:"currentLifts,omitempty"`
}

// CurrentLifts are best working weights in kilograms.
type CurrentLifts struct {
	Squat         *float64 `json:"squat,omitempty" validate:"omitempty,gt=0,lt=600"`
	Bench         *float64 `json:"bench,omitempty" validate:"omitempty,gt=0,lt=500"`
	Deadlift      *float64 `json:"deadlift,omitempty" validate:"omitempty,gt=0,lt=600"`
	OverheadPress *float64 `json:"overheadPress,omitempty" validate:"omitempty,gt=0,lt=300"`
}

type Availability struct {
	DaysPerWeek     int      `json:"daysPerWeek" validate:"required,min=1,max=7"`
	SessionDuration int      `json:"sessionDuration" validate:"required,min=30,max=180"`
	TimeOfDay       string   `json:"timeOfDay,omitempty" validate:"omitempty,oneof=morning afternoon evening flexible"`
	PreferredDays   []string `json:"preferredDays,omitempty" validate:"max=7,dive,max=20"`
}

type Equipment struct {
	GymAccess bool     `json:"gymAccess"`
	GymType   string   `json:"gymType,omitempty" validate:"omitempty,oneof=commercial home garage hotel none"`
	Available []string `json:"available,omitempty" validate:"max=40,dive,max=80"`
	Limited   []string `json:"limited,omitempty" validate:"max=40,dive,max=80"`
}

type Injury struct {
	Area     string   `json:"area" validate:"required,max=80"`
	Severity Severity `json:"severity" validate:"required,oneof=low medium high"`
	Notes    string   `json:"notes,omitempty" validate:"max=500"`
}

type Injuries struct {
	Current              []Injury `json:"current,omitempty" validate:"max=10,dive"`
	Past                 []Injury `json:"past,omitempty" validate:"max=10,dive"`
	MovementRestrictions []string `json:"movementRestrictions,omitempty" validate:"max=20,dive,max=120"`
	PainAreas            []string `json:"painAreas,omitempty" validate:"max=20,dive,max=80"`
}

type Recovery struct {
	SleepHours       float64 `json:"sleepHours" validate:"required,gte=3,lte=12"`
	SleepQuality     string  `json:"sleepQuality,omitempty" validate:"omitempty,oneof=poor fair good excellent"`
	StressLevel      string  `json:"stressLevel,omitempty" validate:"omitempty,oneof=low moderate high very_high"`
	RecoveryCapacity string  `json:"recoveryCapacity,omitempty" validate:"omitempty,oneof=low moderate high"`
}

type Nutrition struct {
	Approach        string   `json:"approach,omitempty" validate:"omitempty,oneof=surplus maintenance deficit flexible"`
	ProteinTier     string   `json:"proteinTier,omitempty" validate:"omitempty,oneof=low moderate high very_high"`
	Restrictions    []string `json:"restrictions,omitempty" validate:"max=20,dive,max=80"`
	Supplements     []string `json:"supplements,omitempty" validate:"max=20,dive,max=80"`
	FoodPreferences string   `json:"foodPreferences,omitempty" validate:"max=1000"`
}

type Preferences struct {
	FavoriteExercises []string `json:"favoriteExercises,omitempty" validate:"max=12,dive,max=80"`
	DislikedExercises []string `json:"dislikedExercises,omitempty" validate:"max=20,dive,max=80"`
	PreferredSplit    string   `json:"preferredSplit,omitempty" validate:"max=80"`
	CardioPreference  string   `json:"cardioPreference,omitempty" validate:"omitempty,oneof=none minimal moderate extensive"`
}

type Constraints struct {
	MaxExercisesPerSession *int   `json:"maxExercisesPerSession,omitempty" validate:"omitempty,min=3,max=12"`
	Notes                  string `json:"notes,omitempty" validate:"max=1000"`
}

// HasGoal reports whether g is the primary or secondary goal.
func (q *Questionnaire) HasGoal(g Goal) bool {
	return q.Goals.PrimaryGoal == g || q.Goals.SecondaryGoal == g
}

// MaxExercises returns the per-session cap and whether one was set.
func (q *Questionnaire) MaxExercises() (int, bool) {
	if q.Constraints.MaxExercisesPerSession == nil {
		return 0, false
	}
	return *q.Constraints.MaxExercisesPerSession, true
}
