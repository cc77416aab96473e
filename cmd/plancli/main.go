// Command plancli generates a plan from a questionnaire file and prints it as
// JSON, or writes a spreadsheet with -xlsx.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/yungbote/liftplan-backend/internal/app"
	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/export"
	"github.com/yungbote/liftplan-backend/internal/fallback"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/normalize"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/platform/shutdown"
)

func main() {
	var in, existing, xlsx string
	var useFallback bool
	flag.StringVar(&in, "in", "", "questionnaire JSON file (- for stdin)")
	flag.StringVar(&existing, "existing", "", "existing plan text file to evolve")
	flag.StringVar(&xlsx, "xlsx", "", "write the plan to this .xlsx path instead of stdout")
	flag.BoolVar(&useFallback, "fallback", false, "build the template plan without calling a model")
	flag.Parse()

	if err := run(in, existing, xlsx, useFallback); err != nil {
		if ae := apierr.As(err); ae != nil {
			fmt.Fprintf(os.Stderr, "%s (%s): %s\n", ae.Code, ae.Kind, ae.Message)
		} else {
			fmt.Fprintf(os.Stderr, "plancli: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(in, existing, xlsx string, useFallback bool) error {
	if in == "" {
		return fmt.Errorf("-in is required")
	}
	q, err := readQuestionnaire(in)
	if err != nil {
		return err
	}

	var p *plan.GeneratedPlan
	if useFallback {
		p = normalize.Normalize(fallback.Generate(q), q)
	} else {
		ctx, stop := shutdown.NotifyContext(context.Background())
		defer stop()
		a, err := app.New(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		input := generator.Input{Questionnaire: q}
		if existing != "" {
			raw, err := os.ReadFile(existing)
			if err != nil {
				return fmt.Errorf("read existing plan: %w", err)
			}
			input.ExistingPlan = string(raw)
		}
		input.OnState = func(s generator.State) {
			fmt.Fprintf(os.Stderr, "%s\n", s.Message())
		}
		out, err := a.Generator.Generate(ctx, input)
		if err != nil {
			return apierr.From(err)
		}
		for _, issue := range out.QualityIssues {
			fmt.Fprintf(os.Stderr, "quality: %s\n", issue)
		}
		p = out.Plan
	}

	if xlsx != "" {
		f, err := os.Create(xlsx)
		if err != nil {
			return err
		}
		if err := export.WriteTo(f, p); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func readQuestionnaire(path string) (plan.Questionnaire, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return plan.Questionnaire{}, fmt.Errorf("read questionnaire: %w", err)
	}
	return plan.DecodeQuestionnaire(raw)
}
