package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/telekom/job-container-naming/pkg/config"
	"github.com/telekom/job-container-naming/pkg/naming"
	"github.com/telekom/job-container-naming/pkg/version"
)

func configPathForTest(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{ConfigPath: configPath, OutputWriter: buf})
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestDeriveTable(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "derive", "MyJob", "My_Job!!")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CONTAINER")
	assert.Contains(t, lines[1], "job-myjob")
	assert.Contains(t, lines[2], "job-my-job-a52c6bc918c50f4cdd95817d121d974fefbba0a2")
}

func TestDeriveJSON(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "derive", "-o", "json", "nightly")
	require.NoError(t, err)

	var results []naming.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Equal(t, []naming.Result{{JobID: "nightly", ContainerName: "job-nightly"}}, results)
}

func TestDeriveYAMLWithAlgorithmFlag(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "derive", "-o", "yaml", "--algorithm", "blake2b-128", "My_Job!!")
	require.NoError(t, err)

	var results []naming.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "job-my-job-57684df389c4f6d448d3bb1f8e59d453", results[0].ContainerName)
	assert.True(t, results[0].Hashed)
}

func TestDeriveTemplate(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "derive", "-o", "go-template={{.containerName}}", "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "job-a\njob-b\n", out)
}

func TestDeriveUsesConfigAlgorithm(t *testing.T) {
	path := configPathForTest(t)
	cfg := config.DefaultConfig()
	cfg.Naming.Algorithm = string(naming.AlgorithmBLAKE2b160)
	cfg.Settings.OutputFormat = "go-template={{.containerName}}"
	require.NoError(t, config.Save(path, &cfg))

	out, err := execute(t, path, "derive", "My_Job!!")
	require.NoError(t, err)
	assert.Equal(t, "job-my-job-82e405f755e661db6e52a2debd7ebef7d8e81027\n", out)
}

func TestDeriveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty id", []string{"derive", "ok", ""}, "argument 2: job id must not be empty"},
		{"no args", []string{"derive"}, "requires at least 1 arg"},
		{"unknown algorithm", []string{"derive", "--algorithm", "md5", "x"}, "unknown digest algorithm"},
		{"unknown format", []string{"derive", "-o", "xml", "x"}, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, configPathForTest(t), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := execute(t, configPathForTest(t), "derive", "")
	require.ErrorIs(t, err, naming.ErrEmptyIdentifier)
}

func TestInvalidConfigFile(t *testing.T) {
	path := configPathForTest(t)
	require.NoError(t, os.WriteFile(path, []byte("naming:\n  algorithm: sha256\n"), 0o600))

	_, err := execute(t, path, "derive", "x")
	require.ErrorIs(t, err, naming.ErrUnknownAlgorithm)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "validate", "job-ok", "job-also-ok")
	require.NoError(t, err)
	assert.Contains(t, out, "job-also-ok")

	out, err = execute(t, configPathForTest(t), "validate", "-o", "json", "job-ok", "Bad--Name")
	require.ErrorIs(t, err, ErrInvalidNames)
	assert.Contains(t, err.Error(), "1 of 2")

	var results []naming.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
}

func TestClassic(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "classic",
		"/subscriptions/s/resourceGroups/rg/providers/Microsoft.ClassicStorage/storageAccounts/old")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, configPathForTest(t), "classic",
		"/subscriptions/s/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/new")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestServeRejectsArgs(t *testing.T) {
	_, err := execute(t, configPathForTest(t), "serve", "extra")
	require.Error(t, err)
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, configPathForTest(t), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")

	_, err = execute(t, configPathForTest(t), "completion", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit, origDate := version.Version, version.GitCommit, version.BuildDate
	defer func() {
		version.Version, version.GitCommit, version.BuildDate = origVersion, origCommit, origDate
	}()
	version.Version = "v1.2.3"
	version.GitCommit = "abc123-dirty"
	version.BuildDate = "2026-01-17T15:00:00Z"

	out, err := execute(t, configPathForTest(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "jobname v1.2.3 (commit: abc123-dirty, built: 2026-01-17T15:00:00Z)\n", out)

	out, err = execute(t, configPathForTest(t), "version", "-o", "json")
	require.NoError(t, err)
	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "v1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)

	out, err = execute(t, configPathForTest(t), "version", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "gitCommit: abc123-dirty")
}

func TestVersionCommandWithoutRuntime(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewVersionCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "jobname "))
}

func TestRuntimeStateOutputFormat(t *testing.T) {
	rt := &runtimeState{outputFormat: "json"}
	require.Equal(t, "json", rt.OutputFormat())

	rt = &runtimeState{cfg: &config.Config{Settings: config.Settings{OutputFormat: "yaml"}}}
	require.Equal(t, "yaml", rt.OutputFormat())

	rt = &runtimeState{}
	require.Equal(t, "table", rt.OutputFormat())
}

func TestRuntimeStateDeriverOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	rt := &runtimeState{cfg: &cfg, algorithmOverride: "BLAKE2B-160"}
	_, alg, err := rt.Deriver()
	require.NoError(t, err)
	require.Equal(t, naming.AlgorithmBLAKE2b160, alg)

	rt = &runtimeState{}
	_, alg, err = rt.Deriver()
	require.NoError(t, err)
	require.Equal(t, naming.DefaultAlgorithm, alg)
}
