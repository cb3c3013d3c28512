/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

// Package output renders command results as tables, JSON, YAML or Go
// templates.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTemplate Format = "go-template"
)

// Printer writes objects in one output format.
type Printer struct {
	Format   Format
	template *template.Template
}

// NewPrinter parses an output flag value. "go-template=<text>" selects a
// Go template evaluated once per item, with sprig functions available.
func NewPrinter(value string) (*Printer, error) {
	name, text, hasTemplate := strings.Cut(value, "=")
	switch Format(name) {
	case "", FormatTable:
		return &Printer{Format: FormatTable}, nil
	case FormatJSON, FormatYAML:
		return &Printer{Format: Format(name)}, nil
	case FormatTemplate:
		if !hasTemplate || text == "" {
			return nil, errors.New("go-template format requires a template, e.g. go-template={{.containerName}}")
		}
		tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template: %w", err)
		}
		return &Printer{Format: FormatTemplate, template: tmpl}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", value)
	}
}

// WriteTemplate executes the printer template for each item. Items are
// converted to their JSON field names first so templates use the same keys
// as -o json.
func (p *Printer) WriteTemplate(w io.Writer, items any) error {
	if p.template == nil {
		return errors.New("printer has no template")
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	var generic []map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("template output requires a list: %w", err)
	}
	for _, item := range generic {
		if err := p.template.Execute(w, item); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func WriteObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case FormatTable:
		return fmt.Errorf("table format requires a specific formatter")
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
