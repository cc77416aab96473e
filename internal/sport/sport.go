// Package sport detects a user's sport from free text and renders the
// sport's training demands.
package sport

import (
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/matching"
)

const GeneralAthletic = "general_athletic"

type keyword struct {
	text  string
	sport string
}

// Ordered: earlier entries win, so multi-word names precede their parts.
var keywords = []keyword{
	{"american football", "football"},
	{"football", "football"},
	{"soccer", "soccer"},
	{"futsal", "soccer"},
	{"basketball", "basketball"},
	{"volleyball", "volleyball"},
	{"tennis", "tennis"},
	{"padel", "tennis"},
	{"squash", "tennis"},
	{"hockey", "hockey"},
	{"rugby", "rugby"},
	{"baseball", "baseball"},
	{"softball", "baseball"},
	{"golf", "golf"},
	{"swim", "swimming"},
	{"triathlon", "cycling"},
	{"cycling", "cycling"},
	{"bike", "cycling"},
	{"rowing", "rowing"},
	{"climb", "climbing"},
	{"boulder", "climbing"},
	{"mma", "mma"},
	{"boxing", "mma"},
	{"kickboxing", "mma"},
	{"muay thai", "mma"},
	{"bjj", "mma"},
	{"jiu jitsu", "mma"},
	{"wrestling", "mma"},
	{"judo", "mma"},
	{"karate", "mma"},
	{"martial art", "mma"},
	{"marathon", "running"},
	{"sprint", "running"},
	{"track", "running"},
	{"running", "running"},
	{"runner", "running"},
	{"5k", "running"},
	{"10k", "running"},
}

func signalText(q plan.Questionnaire) string {
	return matching.Join(q.Goals.SportDetail, q.Goals.SpecificTargets, q.Constraints.Notes)
}

// Detect returns the sport key when a goal is sport_specific, falling back to
// general_athletic when no keyword matches. ok is false for non-sport goals.
func Detect(q plan.Questionnaire) (string, bool) {
	if !q.HasGoal(plan.GoalSportSpecific) {
		return "", false
	}
	if s, hit := match(signalText(q)); hit {
		return s, true
	}
	return GeneralAthletic, true
}

func match(text string) (string, bool) {
	for _, k := range keywords {
		if matching.Contains(text, k.text) {
			return k.sport, true
		}
	}
	return "", false
}

// IsSportFocused is the broader check used when shaping days: a sport goal,
// or any sport keyword in the free text even without one.
func IsSportFocused(q plan.Questionnaire) bool {
	if q.HasGoal(plan.GoalSportSpecific) {
		return true
	}
	_, hit := match(signalText(q))
	return hit
}

// Label is the display name for a sport key.
func Label(sport string) string {
	if p, ok := profiles[sport]; ok {
		return p.name
	}
	return "General Athletic"
}

type profile struct {
	name                 string
	primaryMovements     []string
	keyMuscles           []string
	recommendedExercises []string
	energySystems        string
	injuryRisks          []string
	periodization        string
}

var profiles = map[string]profile{
	"soccer": {"Soccer",
		[]string{"sprinting", "cutting", "kicking", "jumping"},
		[]string{"hamstrings", "adductors", "glutes", "calves", "core"},
		[]string{"Trap Bar Deadlift", "Nordic Hamstring Curl", "Copenhagen Plank", "Lateral Bound", "Split Squat"},
		"Repeated-sprint ability on an aerobic base (roughly 70% aerobic, 30% anaerobic).",
		[]string{"hamstring strains", "groin strains", "ankle sprains", "ACL injuries"},
		"Build strength off-season, shift to power and maintain 1-2 short sessions in-season."},
	"football": {"American Football",
		[]string{"acceleration", "tackling", "blocking", "change of direction"},
		[]string{"glutes", "quads", "upper back", "neck", "core"},
		[]string{"Power Clean", "Back Squat", "Bench Press", "Sled Push", "Box Jump"},
		"Alactic power with short recoveries (plays last 4-7 seconds).",
		[]string{"shoulder injuries", "knee ligament injuries", "hamstring strains"},
		"Heavy strength and hypertrophy off-season, power emphasis pre-season, maintenance in-season."},
	"basketball": {"Basketball",
		[]string{"jumping", "landing", "lateral shuffling", "sprinting"},
		[]string{"calves", "quads", "glutes", "hip stabilizers"},
		[]string{"Trap Bar Jump", "Rear-Foot Elevated Split Squat", "Lateral Bound", "Single-Leg RDL", "Pogo Jumps"},
		"Intermittent high-intensity efforts on an aerobic base.",
		[]string{"ankle sprains", "patellar tendinopathy", "ACL injuries"},
		"Manage jump volume in-season; build strength and landing mechanics off-season."},
	"volleyball": {"Volleyball",
		[]string{"vertical jumping", "overhead striking", "landing"},
		[]string{"calves", "quads", "rotator cuff", "core"},
		[]string{"Depth Jump", "Front Squat", "Landmine Press", "Face Pull", "Pogo Jumps"},
		"Alactic power with long rest between rallies.",
		[]string{"patellar tendinopathy", "shoulder impingement", "ankle sprains"},
		"Track total jump counts; emphasize strength off-season and reactive power pre-season."},
	"tennis": {"Racket Sports",
		[]string{"rotation", "lateral movement", "overhead striking"},
		[]string{"obliques", "rotator cuff", "forearms", "glutes"},
		[]string{"Medicine Ball Rotational Throw", "Lateral Lunge", "Cable Woodchop", "External Rotation", "Split Squat"},
		"Repeated short efforts with frequent brief rests.",
		[]string{"tennis elbow", "shoulder overuse", "low back pain"},
		"Balance rotational power with rotator cuff and forearm durability work."},
	"hockey": {"Hockey",
		[]string{"skating stride", "hip extension", "rotation", "contact"},
		[]string{"adductors", "glutes", "quads", "core"},
		[]string{"Lateral Lunge", "Trap Bar Deadlift", "Skater Jump", "Copenhagen Plank", "Landmine Rotation"},
		"High-intensity shifts of 30-60 seconds with long rest.",
		[]string{"groin strains", "hip impingement", "shoulder separations"},
		"Strength and hypertrophy off-season, power pre-season, two short maintenance lifts in-season."},
	"rugby": {"Rugby",
		[]string{"tackling", "scrummaging", "sprinting", "contact"},
		[]string{"neck", "upper back", "glutes", "quads"},
		[]string{"Power Clean", "Front Squat", "Weighted Pull-Up", "Sled Push", "Farmer Carry"},
		"Repeated high-intensity efforts with incomplete recovery.",
		[]string{"shoulder dislocations", "concussion", "hamstring strains"},
		"Prioritize robustness and neck strength; power and repeat-effort conditioning pre-season."},
	"baseball": {"Baseball",
		[]string{"rotation", "throwing", "sprinting"},
		[]string{"rotator cuff", "obliques", "glutes", "forearms"},
		[]string{"Medicine Ball Rotational Throw", "Trap Bar Deadlift", "Landmine Press", "External Rotation", "Split Squat"},
		"Alactic power with long rests.",
		[]string{"UCL strain", "shoulder labrum injuries", "oblique strains"},
		"Limit heavy overhead work in-season; build rotational power and arm care year-round."},
	"golf": {"Golf",
		[]string{"rotation", "hip hinge", "anti-extension"},
		[]string{"obliques", "glutes", "thoracic spine", "forearms"},
		[]string{"Cable Woodchop", "Romanian Deadlift", "Pallof Press", "Medicine Ball Rotational Throw", "Goblet Squat"},
		"Low metabolic demand; walking endurance.",
		[]string{"low back pain", "golfer's elbow", "wrist strains"},
		"Mobility and rotational power off-season; maintain strength in-season."},
	"swimming": {"Swimming",
		[]string{"overhead pulling", "streamline", "flutter kick"},
		[]string{"lats", "rotator cuff", "core", "hip flexors"},
		[]string{"Pull-Up", "Straight-Arm Pulldown", "Face Pull", "Dead Bug", "Goblet Squat"},
		"Predominantly aerobic with sprint events relying on glycolytic power.",
		[]string{"swimmer's shoulder", "knee strain in breaststroke"},
		"Keep dryland volume low during high-yardage blocks; emphasize scapular control."},
	"cycling": {"Cycling",
		[]string{"hip and knee extension", "sustained posture"},
		[]string{"quads", "glutes", "calves", "low back"},
		[]string{"Back Squat", "Single-Leg Press", "Romanian Deadlift", "Step-Up", "Side Plank"},
		"Predominantly aerobic with repeated threshold efforts.",
		[]string{"knee overuse", "low back pain", "reduced bone density"},
		"Heavy strength in the off-season; short maintenance sessions during race season."},
	"rowing": {"Rowing",
		[]string{"leg drive", "hip hinge", "horizontal pulling"},
		[]string{"quads", "glutes", "lats", "spinal erectors"},
		[]string{"Deadlift", "Front Squat", "Bench Pull", "Pendlay Row", "Side Plank"},
		"Aerobic base with high-power 2k efforts.",
		[]string{"rib stress fractures", "low back pain"},
		"Strength endurance in winter, power and race-pace work in spring."},
	"climbing": {"Climbing",
		[]string{"vertical pulling", "grip", "high stepping"},
		[]string{"forearms", "lats", "rotator cuff", "core"},
		[]string{"Weighted Pull-Up", "Hangboard Hang", "Push-Up", "Hanging Leg Raise", "External Rotation"},
		"Intermittent isometric efforts with aerobic recovery.",
		[]string{"finger pulley strains", "elbow tendinopathy", "shoulder impingement"},
		"Cycle finger-strength blocks; keep antagonist pushing work year-round."},
	"mma": {"Combat Sports",
		[]string{"rotation", "level changes", "grappling", "striking"},
		[]string{"neck", "hips", "core", "grip"},
		[]string{"Trap Bar Deadlift", "Medicine Ball Rotational Throw", "Pull-Up", "Sled Push", "Farmer Carry"},
		"Mixed energy systems across 3-5 minute rounds.",
		[]string{"shoulder dislocations", "knee ligament injuries", "neck strains"},
		"Concentrate strength work away from hard sparring; taper lifting volume into fight camp."},
	"running": {"Running",
		[]string{"single-leg support", "hip extension", "ankle stiffness"},
		[]string{"calves", "glutes", "hamstrings", "core"},
		[]string{"Single-Leg RDL", "Split Squat", "Calf Raise", "Step-Up", "Side Plank"},
		"Aerobic for distance events; alactic and glycolytic for sprints.",
		[]string{"shin splints", "Achilles tendinopathy", "IT band pain"},
		"Two strength sessions off-season, one to two in-season away from key runs."},
}

var generalGuidance = strings.Join([]string{
	"Sport focus: General Athletic Development",
	"Primary movements: sprinting, jumping, throwing, carrying, changing direction",
	"Key muscles: glutes, hamstrings, core, upper back",
	"Recommended exercises: Trap Bar Deadlift, Box Jump, Medicine Ball Slam, Split Squat, Farmer Carry",
	"Energy systems: balanced alactic power and aerobic conditioning",
	"Injury risks: hamstring strains, ankle sprains",
	"Periodization: alternate 3-4 week strength and power blocks with a lighter week between them.",
}, "\n")

// Guidance renders the sport profile, or general athletic development for
// unknown keys.
func Guidance(sport string) string {
	p, ok := profiles[sport]
	if !ok {
		return generalGuidance
	}
	return strings.Join([]string{
		fmt.Sprintf("Sport focus: %s", p.name),
		"Primary movements: " + strings.Join(p.primaryMovements, ", "),
		"Key muscles: " + strings.Join(p.keyMuscles, ", "),
		"Recommended exercises: " + strings.Join(p.recommendedExercises, ", "),
		"Energy systems: " + p.energySystems,
		"Injury risks: " + strings.Join(p.injuryRisks, ", "),
		"Periodization: " + p.periodization,
	}, "\n")
}
