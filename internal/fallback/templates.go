package fallback

const (
	dayFullBody = "full_body"
	dayUpper    = "upper"
	dayLower    = "lower"
	dayPush     = "push"
	dayPull     = "pull"
	dayLegs     = "legs"
)

var dayTitles = map[string]string{
	dayFullBody: "Full Body",
	dayUpper:    "Upper Body",
	dayLower:    "Lower Body",
	dayPush:     "Push",
	dayPull:     "Pull",
	dayLegs:     "Legs",
}

var dayFocus = map[string]string{
	dayFullBody: "Full body strength",
	dayUpper:    "Upper body: chest, back, shoulders, arms",
	dayLower:    "Lower body: quads, hamstrings, glutes, calves",
	dayPush:     "Upper push: chest, shoulders, triceps",
	dayPull:     "Upper pull: back, biceps, rear delts",
	dayLegs:     "Lower body: quads, hamstrings, glutes",
}

// schedules is indexed by days per week.
var schedules = map[int][]string{
	1: {dayFullBody},
	2: {dayFullBody, dayFullBody},
	3: {dayFullBody, dayFullBody, dayFullBody},
	4: {dayUpper, dayLower, dayUpper, dayLower},
	5: {dayPush, dayPull, dayLegs, dayUpper, dayLower},
	6: {dayPush, dayPull, dayLegs, dayPush, dayPull, dayLegs},
	7: {dayPush, dayPull, dayLegs, dayUpper, dayLower, dayFullBody, dayFullBody},
}

var gymLibrary = map[string][]string{
	dayFullBody: {"Back Squat", "Bench Press", "Barbell Row", "Romanian Deadlift", "Overhead Press", "Lat Pulldown", "Plank"},
	dayUpper:    {"Bench Press", "Barbell Row", "Overhead Press", "Lat Pulldown", "Dumbbell Lateral Raise", "Dumbbell Curl", "Cable Triceps Pushdown"},
	dayLower:    {"Back Squat", "Romanian Deadlift", "Bulgarian Split Squat", "Leg Curl", "Standing Calf Raise", "Hanging Leg Raise"},
	dayPush:     {"Bench Press", "Overhead Press", "Incline Dumbbell Press", "Dumbbell Lateral Raise", "Cable Triceps Pushdown", "Cable Fly"},
	dayPull:     {"Deadlift", "Pull-Up", "Barbell Row", "Face Pull", "Dumbbell Curl", "Hammer Curl"},
	dayLegs:     {"Back Squat", "Romanian Deadlift", "Leg Press", "Walking Lunge", "Leg Curl", "Standing Calf Raise"},
}

var homeLibrary = map[string][]string{
	dayFullBody: {"Goblet Squat", "Push-Up", "One-Arm Dumbbell Row", "Dumbbell Romanian Deadlift", "Pike Push-Up", "Dead Bug", "Plank"},
	dayUpper:    {"Push-Up", "One-Arm Dumbbell Row", "Dumbbell Overhead Press", "Inverted Row", "Dumbbell Lateral Raise", "Dumbbell Curl"},
	dayLower:    {"Goblet Squat", "Dumbbell Romanian Deadlift", "Reverse Lunge", "Single-Leg Glute Bridge", "Single-Leg Calf Raise", "Side Plank"},
	dayPush:     {"Push-Up", "Dumbbell Overhead Press", "Pike Push-Up", "Dumbbell Floor Press", "Bench Dip", "Dumbbell Lateral Raise"},
	dayPull:     {"One-Arm Dumbbell Row", "Inverted Row", "Dumbbell Reverse Fly", "Dumbbell Curl", "Hammer Curl", "Prone Y-Raise"},
	dayLegs:     {"Goblet Squat", "Bulgarian Split Squat", "Dumbbell Romanian Deadlift", "Dumbbell Step-Up", "Sliding Leg Curl", "Single-Leg Calf Raise"},
}

// safeLibrary is used when restrictions remove even the full-body templates.
var safeLibrary = []string{"Dead Bug", "Side Plank", "Bird Dog", "Glute Bridge", "Band Pull-Apart", "Brisk Walk"}

var warmup = struct {
	description string
	exercises   []string
}{
	"5 minutes of easy cardio, then dynamic mobility and two light ramp-up sets of the first lift.",
	[]string{"Easy Bike or Brisk Walk", "Leg Swings", "Arm Circles", "Hip Circles"},
}

var cooldown = struct {
	description string
	exercises   []string
}{
	"5 minutes of easy walking and light stretching for the muscles trained.",
	[]string{"Easy Walk", "Hip Flexor Stretch", "Chest Doorway Stretch"},
}

var substitutes = map[string][]string{
	"Back Squat":             {"Goblet Squat", "Leg Press"},
	"Bench Press":            {"Dumbbell Bench Press", "Push-Up"},
	"Barbell Row":            {"Seated Cable Row", "One-Arm Dumbbell Row"},
	"Romanian Deadlift":      {"Dumbbell Romanian Deadlift", "Hip Hinge with Band"},
	"Deadlift":               {"Trap Bar Deadlift", "Romanian Deadlift"},
	"Overhead Press":         {"Dumbbell Overhead Press", "Landmine Press"},
	"Pull-Up":                {"Lat Pulldown", "Inverted Row"},
	"Lat Pulldown":           {"Pull-Up", "Band Pulldown"},
	"Goblet Squat":           {"Bodyweight Squat", "Split Squat"},
	"Push-Up":                {"Incline Push-Up", "Dumbbell Floor Press"},
	"One-Arm Dumbbell Row":   {"Inverted Row", "Band Row"},
	"Bulgarian Split Squat":  {"Reverse Lunge", "Step-Up"},
	"Leg Press":              {"Goblet Squat", "Hack Squat"},
	"Incline Dumbbell Press": {"Incline Push-Up", "Landmine Press"},
}
