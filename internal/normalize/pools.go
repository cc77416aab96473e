package normalize

// Static tables. Nothing here is mutated after init.

type lift struct {
	key  string
	name string
}

// Core lifts guaranteed for strength and muscle-building goals. key is the
// presence keyword.
var mandatoryLifts = []lift{
	{"squat", "Back Squat"},
	{"bench press", "Bench Press"},
	{"deadlift", "Deadlift"},
	{"overhead press", "Overhead Press"},
	{"row", "Barbell Row"},
	{"pull up", "Pull-Up"},
}

type targetRule struct {
	signals []string
	lift
}

// Free-text targets ("bench 100kg", "first pull-up") map to the exercise
// that trains them.
var targetRules = []targetRule{
	{[]string{"bench"}, lift{"bench press", "Bench Press"}},
	{[]string{"squat"}, lift{"squat", "Back Squat"}},
	{[]string{"deadlift"}, lift{"deadlift", "Deadlift"}},
	{[]string{"pull up", "pullup", "chin up"}, lift{"pull up", "Pull-Up"}},
	{[]string{"overhead", "ohp", "military"}, lift{"overhead press", "Overhead Press"}},
	{[]string{"glute", "hip thrust", "booty"}, lift{"hip thrust", "Barbell Hip Thrust"}},
	{[]string{"vertical", "jump", "dunk"}, lift{"box jump", "Box Jump"}},
	{[]string{"grip", "forearm"}, lift{"carry", "Dumbbell Farmer Carry"}},
	{[]string{"abs", "six pack", "core strength", "midsection"}, lift{"leg raise", "Hanging Leg Raise"}},
	{[]string{"bicep", "arms"}, lift{"curl", "Dumbbell Curl"}},
	{[]string{"5k", "10k", "run", "mile"}, lift{"tempo run", "Tempo Run"}},
	{[]string{"sprint", "speed"}, lift{"sprint", "Hill Sprint"}},
}

// Fill pools. None contains a pull-up variant, and no name matches both a
// compound and an isolation keyword.
var (
	upperPool = []string{
		"Incline Dumbbell Press", "One-Arm Dumbbell Row", "Dumbbell Lateral Raise", "Face Pull",
		"Dumbbell Curl", "Cable Triceps Pushdown", "Dumbbell Reverse Fly", "Push-Up", "Hammer Curl",
		"Band Pull-Apart", "Dumbbell Overhead Triceps Extension", "Inverted Row", "Pike Push-Up", "Bench Dip",
	}
	lowerPool = []string{
		"Bulgarian Split Squat", "Walking Lunge", "Leg Curl", "Barbell Hip Thrust", "Single-Leg Glute Bridge",
		"Dumbbell Step-Up", "Single-Leg Calf Raise", "Goblet Squat", "Reverse Lunge", "Sliding Leg Curl",
		"Cable Pull-Through", "Dumbbell Hip Thrust", "Leg Extension", "Dumbbell Romanian Deadlift",
	}
	corePool = []string{
		"Plank", "Dead Bug", "Pallof Press", "Hanging Leg Raise", "Dumbbell Farmer Carry", "Side Plank",
		"Kettlebell Swing", "Bear Crawl", "Ab Wheel Rollout", "Hollow Body Hold",
	}
)

func poolFor(focus string) []string {
	switch focus {
	case focusUpper:
		return append(append([]string{}, upperPool...), corePool...)
	case focusLower:
		return append(append([]string{}, lowerPool...), corePool...)
	}
	var out []string
	out = append(out, corePool...)
	for i := 0; i < len(upperPool) || i < len(lowerPool); i++ {
		if i < len(lowerPool) {
			out = append(out, lowerPool[i])
		}
		if i < len(upperPool) {
			out = append(out, upperPool[i])
		}
	}
	return out
}

var (
	powerPool = []string{
		"Box Jump", "Broad Jump", "Medicine Ball Slam", "Medicine Ball Rotational Throw", "Power Clean",
		"Dumbbell Snatch", "Push Press", "Plyo Push-Up", "Lateral Bound",
	}
	conditioningPool = []string{
		"Bike Sprint Intervals", "Rowing Erg Intervals", "Sled Push", "Shuttle Run Intervals",
		"Burpee Intervals", "Hill Sprint", "Tempo Run", "Kettlebell Swing",
	}
	mixedPool = []string{
		"Burpee Broad Jump", "Medicine Ball Slam Intervals", "Sprint Bound Intervals", "Dumbbell Snatch Intervals",
	}
)

// Variations replace a second identical occurrence of a movement. Pull-up
// variations never contain "pull up" so a plan keeps one Pull-Up.
var variations = map[string][]string{
	"squat":    {"Front Squat", "Goblet Squat", "Box Squat", "Bulgarian Split Squat", "Bodyweight Squat"},
	"deadlift": {"Romanian Deadlift", "Trap Bar Deadlift", "Sumo Deadlift", "Dumbbell Romanian Deadlift", "Single-Leg Romanian Deadlift"},
	"bench":    {"Incline Bench Press", "Close-Grip Bench Press", "Dumbbell Bench Press", "Push-Up"},
	"row":      {"Pendlay Row", "Chest-Supported Dumbbell Row", "Seated Cable Row", "One-Arm Dumbbell Row", "Inverted Row"},
	"overhead": {"Push Press", "Dumbbell Overhead Press", "Seated Dumbbell Shoulder Press", "Pike Push-Up"},
	"lunge":    {"Reverse Lunge", "Walking Lunge", "Dumbbell Walking Lunge", "Lateral Lunge"},
	"carry":    {"Dumbbell Farmer Carry", "Kettlebell Suitcase Carry", "Dumbbell Overhead Carry"},
	"pull-up":  {"Chin-Up", "Neutral-Grip Chin-Up", "Lat Pulldown", "Inverted Row"},
}

type sportDay struct {
	label        string
	power        int
	conditioning int
}

var sportDays = []sportDay{
	{"Power + Strength", 2, 0},
	{"Conditioning / Engine", 0, 2},
	{"Mixed", 1, 1},
	{"Speed + Power", 2, 0},
	{"Aerobic Base", 0, 2},
}
