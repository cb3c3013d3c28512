package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/telekom/job-container-naming/pkg/naming"
)

var sampleResults = []naming.Result{
	{JobID: "MyJob", ContainerName: "job-myjob"},
	{JobID: "My_Job!!", ContainerName: "job-my-job-a52c6bc918c50f4cdd95817d121d974fefbba0a2", Hashed: true},
}

func TestNewPrinter(t *testing.T) {
	tests := []struct {
		value   string
		format  Format
		wantErr string
	}{
		{"", FormatTable, ""},
		{"table", FormatTable, ""},
		{"json", FormatJSON, ""},
		{"yaml", FormatYAML, ""},
		{"go-template={{.containerName}}", FormatTemplate, ""},
		{"go-template", "", "requires a template"},
		{"go-template={{.containerName", "", "failed to parse template"},
		{"xml", "", "unknown output format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			p, err := NewPrinter(tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, p.Format)
		})
	}
}

func TestPrintJSON(t *testing.T) {
	p, err := NewPrinter("json")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, p.Print(buf, sampleResults, nil))

	var decoded []naming.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults, decoded)
	assert.Contains(t, buf.String(), `"containerName": "job-myjob"`)
}

func TestPrintYAML(t *testing.T) {
	p, err := NewPrinter("yaml")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, p.Print(buf, sampleResults, nil))

	var decoded []naming.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults, decoded)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestPrintTemplate(t *testing.T) {
	p, err := NewPrinter(`go-template={{ .jobId | lower }}={{ .containerName | trunc 9 }}`)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, p.Print(buf, sampleResults, nil))
	assert.Equal(t, "myjob=job-myjob\nmy_job!!=job-my-jo\n", buf.String())
}

func TestPrintTable(t *testing.T) {
	p, err := NewPrinter("table")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, p.Print(buf, sampleResults, func(w io.Writer) { WriteContainerNameTable(w, sampleResults) }))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "JOB ID")
	assert.Contains(t, lines[1], "job-myjob")
	assert.True(t, strings.HasSuffix(lines[1], "no"))
	assert.True(t, strings.HasSuffix(lines[2], "yes"))
}

func TestWriteValidationTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteValidationTable(buf, []naming.ValidationResult{
		naming.Check("job-ok"),
		naming.Check("x--"),
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "job-ok")
	assert.Contains(t, out, "must not contain consecutive dashes")
}

func TestWriteObject_UnknownFormat(t *testing.T) {
	err := WriteObject(&bytes.Buffer{}, Format("invalid"), struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format: invalid")

	err = WriteObject(&bytes.Buffer{}, FormatTable, struct{}{})
	require.Error(t, err)
}

func TestWriteObject_JSONMarshalError(t *testing.T) {
	// Channels cannot be marshaled to JSON
	err := WriteObject(&bytes.Buffer{}, FormatJSON, make(chan int))
	require.Error(t, err)
}
