package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = "You are a reporting assistant. Generate concise, structured summaries suitable for a PMO report. Use clear, actionable language."

const instructionTemplate = `Summarize the following %[1]s-grouped review data into strict JSON with:
{
  "scope": "%[1]s",
  "groups": [
    {
      "name": "string",
      "metrics": { "totalReviews": number, "completed": number, "draft": number },
      "keyThemes": ["string"],
      "issues": ["string"],
      "actionItems": ["string"]
    }
  ],
  "highlights": ["string"]
}

Notes:
- Derive metrics from status fields.
- Key themes: recurring observations.
- Issues: problems or risks.
- Action items: specific, actionable steps.
- Be concise; avoid duplications; no free-form paragraphs.
- Output must be valid JSON only.

DATA:
`

type promptPayload struct {
	Scope  Scope   `json:"scope"`
	Groups []Group `json:"groups"`
}

// BuildPrompt renders the instruction block and the aggregated groups into
// the single text part sent to the model.
func BuildPrompt(scope Scope, groups []Group) (string, error) {
	if !scope.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, string(scope))
	}
	if groups == nil {
		groups = []Group{}
	}

	data, err := marshalNoEscape(promptPayload{Scope: scope, Groups: groups})
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt payload: %w", err)
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(instructionTemplate, scope))
	b.Write(data)
	return b.String(), nil
}

// marshalNoEscape encodes v without escaping <, > and & so review text reaches
// the model verbatim.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
