package prompts

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/yungbote/liftplan-backend/internal/platform/promptstyle"
)

type Name string

const (
	NameDraft    Name = "plan_draft"
	NameFeedback Name = "plan_feedback"
	NameRefine   Name = "plan_refine"
	NameRepair   Name = "plan_repair"
)

// Input is a superset of the fields any prompt reads. Missing fields render
// as empty strings.
type Input struct {
	DaysPerWeek   int
	BannedPhrases []string
	Context       string
	PlanJSON      string
	Issues        []string
	UserEcho      string
	Requirements  string
	BrokenText    string
	ParseError    string
}

type Prompt struct {
	Name       Name
	Version    int
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}

// Fingerprint identifies a rendered prompt in logs and traces.
func (p Prompt) Fingerprint() string {
	h := sha256.Sum256([]byte(string(p.Name) + "|" + strconv.Itoa(p.Version) + "|" +
		strings.TrimSpace(p.System) + "|" + strings.TrimSpace(p.User)))
	return hex.EncodeToString(h[:])[:16]
}

// Spec declares a prompt. System and User are text/templates over Input.
type Spec struct {
	Name       Name
	Version    int
	SchemaName string
	Schema     func() map[string]any
	System     string
	User       string
}

type compiled struct {
	spec   Spec
	system *template.Template
	user   *template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"bullets": func(items []string) string {
		if len(items) == 0 {
			return "- (none)"
		}
		return "- " + strings.Join(items, "\n- ")
	},
}

func compile(s Spec) (compiled, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return compiled{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return compiled{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	if s.Schema == nil || strings.TrimSpace(s.SchemaName) == "" {
		return compiled{}, fmt.Errorf("missing schema for %s", s.Name)
	}
	sys, err := template.New("system").Funcs(funcs).Option("missingkey=zero").Parse(s.System)
	if err != nil {
		return compiled{}, fmt.Errorf("%s system template: %w", s.Name, err)
	}
	user, err := template.New("user").Funcs(funcs).Option("missingkey=zero").Parse(s.User)
	if err != nil {
		return compiled{}, fmt.Errorf("%s user template: %w", s.Name, err)
	}
	return compiled{spec: s, system: sys, user: user}, nil
}

var registry = map[Name]compiled{}

func register(s Spec) {
	c, err := compile(s)
	if err != nil {
		panic(err)
	}
	registry[s.Name] = c
}

// Build renders a registered prompt.
func Build(name Name, in Input) (Prompt, error) {
	c, ok := registry[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", name)
	}
	render := func(t *template.Template) (string, error) {
		var b bytes.Buffer
		if err := t.Execute(&b, in); err != nil {
			return "", fmt.Errorf("render %s: %w", name, err)
		}
		return strings.TrimSpace(b.String()), nil
	}
	sys, err := render(c.system)
	if err != nil {
		return Prompt{}, err
	}
	user, err := render(c.user)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Name:       name,
		Version:    c.spec.Version,
		System:     promptstyle.ApplySystem(sys, "json"),
		User:       user,
		SchemaName: c.spec.SchemaName,
		Schema:     c.spec.Schema(),
	}, nil
}
