package promptstyle

import "strings"

const marker = "LIFTPLAN_PROMPT_STYLE_V1"

// ApplySystem prepends the shared output-discipline block to a system
// prompt. Applying it twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nUse the provided athlete context and reference material as grounding; do not invent injuries, equipment or preferences.")
	b.WriteString("\nWhen information is missing, choose the conservative option.")
	if mode == "json" {
		b.WriteString("\nReturn a single JSON object that conforms to the schema and contains no extra keys, markdown or commentary.")
	} else {
		b.WriteString("\nBe concise and structured.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return strings.TrimSpace(b.String())
}
