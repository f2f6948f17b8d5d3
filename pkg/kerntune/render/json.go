package render

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
)

// jsonOutput represents the full JSON output structure.
type jsonOutput struct {
	Meta       jsonMeta          `json:"meta"`
	Parameters map[string]string `json:"parameters"`
	Order      []string          `json:"order"`
}

// jsonMeta represents artifact metadata in JSON output.
type jsonMeta struct {
	Profile     string    `json:"profile"`
	Description string    `json:"description"`
	Hardware    string    `json:"hardware"`
	IPv6Off     bool      `json:"ipv6_disabled"`
	TargetPath  string    `json:"target_path,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	KeyCount    int       `json:"key_count"`
}

// JSONFormatter formats the artifact as a single indented JSON object.
// The sorted key order is carried explicitly since JSON object key order
// is not guaranteed by decoders.
type JSONFormatter struct{}

// Format writes the formatted artifact to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, a *engine.Artifact) error {
	out := jsonOutput{
		Meta: jsonMeta{
			Profile:     a.Profile.String(),
			Description: a.Profile.Description(),
			Hardware:    HardwareSummary(a),
			IPv6Off:     a.DisableIPv6,
			TargetPath:  a.TargetPath,
			GeneratedAt: a.GeneratedAt,
			KeyCount:    len(a.Entries),
		},
		Parameters: make(map[string]string, len(a.Entries)),
		Order:      make([]string, len(a.Entries)),
	}
	for i, e := range a.Entries {
		out.Parameters[string(e.Key)] = e.Value.String()
		out.Order[i] = string(e.Key)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
