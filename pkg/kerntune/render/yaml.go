package render

import (
	"bytes"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
)

// yamlOutput represents the full YAML output structure.
type yamlOutput struct {
	Meta       yamlMeta    `yaml:"meta"`
	Parameters []yamlParam `yaml:"parameters"`
}

// yamlMeta represents artifact metadata in YAML output.
type yamlMeta struct {
	Profile     string    `yaml:"profile"`
	Description string    `yaml:"description"`
	Hardware    string    `yaml:"hardware"`
	IPv6Off     bool      `yaml:"ipv6_disabled"`
	TargetPath  string    `yaml:"target_path,omitempty"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// yamlParam is one parameter entry; a sequence preserves the sorted order.
type yamlParam struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// YAMLFormatter formats the artifact as a YAML document.
type YAMLFormatter struct{}

// Format writes the formatted artifact to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, a *engine.Artifact) error {
	out := yamlOutput{
		Meta: yamlMeta{
			Profile:     a.Profile.String(),
			Description: a.Profile.Description(),
			Hardware:    HardwareSummary(a),
			IPv6Off:     a.DisableIPv6,
			TargetPath:  a.TargetPath,
			GeneratedAt: a.GeneratedAt,
		},
		Parameters: make([]yamlParam, len(a.Entries)),
	}
	for i, e := range a.Entries {
		out.Parameters[i] = yamlParam{Key: string(e.Key), Value: e.Value.String()}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
