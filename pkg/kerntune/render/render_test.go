package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

func testArtifact(t *testing.T) *engine.Artifact {
	t.Helper()
	art, err := engine.Resolve(engine.Request{
		Facts:      facts.Facts{Cores: 4, Threads: 4, RAMGB: 8, NICMbps: 1000, Disk: facts.HDD},
		Profile:    profile.General,
		TargetPath: "/etc/sysctl.d/99-kerntune.conf",
		Timestamp:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return art
}

func TestRegistryHasAllFormats(t *testing.T) {
	available := Available()
	for _, name := range []string{"conf", "table", "json", "yaml"} {
		assert.Contains(t, available, name)
	}
}

func TestGetUnknownFormatter(t *testing.T) {
	_, err := Get("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formatter")
}

func TestConfFormat(t *testing.T) {
	formatter, err := Get("conf")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Format(&buf, testArtifact(t)))
	out := buf.String()

	assert.Contains(t, out, "# Profile: general - Balanced defaults for mixed workloads")
	assert.Contains(t, out, "# Generated: 2026-08-01T12:00:00Z")
	assert.Contains(t, out, "# Install to: /etc/sysctl.d/99-kerntune.conf")
	assert.Contains(t, out, "vm.swappiness = 20")
	assert.Contains(t, out, "vm.min_free_kbytes = 32768")
	assert.Contains(t, out, "net.ipv4.tcp_rmem = 4096 87380 8388608")
}

func TestConfFormatDeterministic(t *testing.T) {
	formatter, err := Get("conf")
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, formatter.Format(&first, testArtifact(t)))
	require.NoError(t, formatter.Format(&second, testArtifact(t)))
	assert.Equal(t, first.Bytes(), second.Bytes(), "identical inputs must render byte-identically")
}

func TestConfFormatSortedLines(t *testing.T) {
	formatter, err := Get("conf")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Format(&buf, testArtifact(t)))

	var keys []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, ok := strings.Cut(line, " = ")
		require.True(t, ok, "malformed line %q", line)
		keys = append(keys, key)
	}
	require.NotEmpty(t, keys)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i], "keys out of order")
	}
}

func TestJSONFormat(t *testing.T) {
	formatter, err := Get("json")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Format(&buf, testArtifact(t)))

	var out struct {
		Meta struct {
			Profile  string `json:"profile"`
			KeyCount int    `json:"key_count"`
		} `json:"meta"`
		Parameters map[string]string `json:"parameters"`
		Order      []string          `json:"order"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "general", out.Meta.Profile)
	assert.Equal(t, len(out.Parameters), out.Meta.KeyCount)
	assert.Equal(t, "20", out.Parameters["vm.swappiness"])
	assert.Len(t, out.Order, len(out.Parameters))
}

func TestYAMLFormat(t *testing.T) {
	formatter, err := Get("yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Format(&buf, testArtifact(t)))

	var out struct {
		Meta struct {
			Profile string `yaml:"profile"`
		} `yaml:"meta"`
		Parameters []struct {
			Key   string `yaml:"key"`
			Value string `yaml:"value"`
		} `yaml:"parameters"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "general", out.Meta.Profile)
	require.NotEmpty(t, out.Parameters)
	for i := 1; i < len(out.Parameters); i++ {
		assert.Less(t, out.Parameters[i-1].Key, out.Parameters[i].Key)
	}
}

func TestTableFormat(t *testing.T) {
	formatter, err := Get("table")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Format(&buf, testArtifact(t)))
	out := buf.String()

	assert.Contains(t, out, "general profile")
	assert.Contains(t, out, "vm.swappiness")
	assert.Contains(t, out, "sysctl --system")
}

func TestHardwareSummary(t *testing.T) {
	art := testArtifact(t)
	summary := HardwareSummary(art)
	assert.Contains(t, summary, "4 cores / 4 threads")
	assert.Contains(t, summary, "8.0 GiB RAM")
	assert.Contains(t, summary, "HDD")

	art.Facts.Container = true
	assert.Contains(t, HardwareSummary(art), "containerized")
}
