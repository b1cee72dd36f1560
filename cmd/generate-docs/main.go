// Copyright 2025 Andrew Khoury
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// generate-docs generates documentation from config structs using reflection
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/drew/planview/internal/cli"
	"github.com/drew/planview/internal/config"
)

// FieldDoc represents documentation for a single field
type FieldDoc struct {
	Name        string
	Type        string
	Default     string
	Description string
	ValidValues []string
}

// SectionDoc represents documentation for a config section
type SectionDoc struct {
	Name        string
	Description string
	Fields      []FieldDoc
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--help" {
		fmt.Println("Usage: generate-docs [OUTPUT_DIR]")
		fmt.Println("Generates documentation from config structs and the command tree:")
		fmt.Println("  - config.example.toml")
		fmt.Println("  - config.schema.json")
		fmt.Println("  - docs/configuration.md")
		fmt.Println("  - docs/cli-reference.md")
		return
	}

	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	docs := buildDocumentation()

	steps := []struct {
		name string
		run  func() error
	}{
		{"config.example.toml", func() error { return generateExampleTOML(outDir, docs) }},
		{"config.schema.json", func() error { return generateJSONSchema(outDir, docs) }},
		{"docs/configuration.md", func() error { return generateMarkdownDocs(outDir, docs) }},
		{"docs/cli-reference.md", func() error { return generateCLIDocs(outDir, cli.NewRootCmd()) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", step.name, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", step.name)
	}
}

func buildDocumentation() []SectionDoc {
	defaults := config.GetDefaults()

	return []SectionDoc{
		extractSection("view", "Timeline geometry", defaults.View),
		extractSection("visibility", "Which plan steps are displayed", defaults.Visibility),
		extractSection("output", "Files written by the render command", defaults.Output),
		extractSection("serve", "The interactive viewer started by the serve command", defaults.Serve),
		extractSection("logging", "Structured log output", defaults.Logging),
	}
}

// extractSection uses reflection to extract field documentation from struct tags
func extractSection(name, description string, defaultValue interface{}) SectionDoc {
	section := SectionDoc{
		Name:        name,
		Description: description,
		Fields:      []FieldDoc{},
	}

	t := reflect.TypeOf(defaultValue)
	v := reflect.ValueOf(defaultValue)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		docTag := field.Tag.Get("doc")
		tomlTag := field.Tag.Get("toml")
		if docTag == "" || tomlTag == "" {
			continue
		}

		fieldDoc := FieldDoc{
			Name:        tomlTag,
			Type:        getFieldType(field.Type),
			Description: docTag,
			Default:     getDefaultValue(v.Field(i)),
		}
		if enumTag := field.Tag.Get("enum"); enumTag != "" {
			fieldDoc.ValidValues = strings.Split(enumTag, ",")
		}

		section.Fields = append(section.Fields, fieldDoc)
	}

	return section
}

// getFieldType returns the TOML-facing name of a field type
func getFieldType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "[]" + getFieldType(t.Elem())
	case reflect.Ptr:
		return getFieldType(t.Elem())
	default:
		return t.String()
	}
}

// getDefaultValue renders a default as a TOML value
func getDefaultValue(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return ""
		}
		return strconv.Quote(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		items := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, getDefaultValue(v.Index(i)))
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return ""
	}
}

func generateExampleTOML(outDir string, docs []SectionDoc) error {
	var sb strings.Builder

	sb.WriteString(`# =============================================================================
# planview Configuration Reference
# =============================================================================
# This is a comprehensive example showing ALL available configuration options.
# Copy the sections you need to your own planview.toml.
# =============================================================================

`)

	for _, section := range docs {
		sb.WriteString("# -----------------------------------------------------------------------------\n")
		sb.WriteString(fmt.Sprintf("# [%s] - %s\n", section.Name, section.Description))
		sb.WriteString("# -----------------------------------------------------------------------------\n\n")
		sb.WriteString(fmt.Sprintf("[%s]\n", section.Name))

		for _, field := range section.Fields {
			sb.WriteString(fmt.Sprintf("# %s\n", field.Description))
			sb.WriteString(fmt.Sprintf("# Default: %s\n", field.Default))
			if len(field.ValidValues) > 0 {
				sb.WriteString(fmt.Sprintf("# Valid values: %s\n", strings.Join(field.ValidValues, ", ")))
			}
			if field.Default == "" {
				sb.WriteString(fmt.Sprintf("# %s = \n", field.Name))
			} else {
				sb.WriteString(fmt.Sprintf("%s = %s\n", field.Name, field.Default))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(filepath.Join(outDir, "config.example.toml"), []byte(sb.String()), 0644)
}

func jsonSchemaType(fieldType string) map[string]interface{} {
	switch {
	case fieldType == "string":
		return map[string]interface{}{"type": "string"}
	case fieldType == "int":
		return map[string]interface{}{"type": "integer"}
	case fieldType == "float":
		return map[string]interface{}{"type": "number"}
	case fieldType == "bool":
		return map[string]interface{}{"type": "boolean"}
	case strings.HasPrefix(fieldType, "[]"):
		return map[string]interface{}{"type": "array", "items": jsonSchemaType(fieldType[2:])}
	default:
		return map[string]interface{}{}
	}
}

func generateJSONSchema(outDir string, docs []SectionDoc) error {
	properties := make(map[string]interface{})
	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "planview Configuration",
		"description":          "Configuration schema for the planview plan renderer",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}

	for _, section := range docs {
		fields := make(map[string]interface{})
		for _, field := range section.Fields {
			fieldSchema := jsonSchemaType(field.Type)
			fieldSchema["description"] = field.Description
			if field.Default != "" {
				var def interface{}
				// TOML scalars and string arrays are valid JSON literals
				if err := json.Unmarshal([]byte(field.Default), &def); err == nil {
					fieldSchema["default"] = def
				}
			}
			if len(field.ValidValues) > 0 {
				fieldSchema["enum"] = field.ValidValues
			}
			fields[field.Name] = fieldSchema
		}

		properties[section.Name] = map[string]interface{}{
			"type":                 "object",
			"description":          section.Description,
			"additionalProperties": false,
			"properties":           fields,
		}
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "config.schema.json"), data, 0644)
}

func generateMarkdownDocs(outDir string, docs []SectionDoc) error {
	var sb strings.Builder

	sb.WriteString("# Configuration\n\n")
	sb.WriteString("planview reads `planview.toml` from the working directory, or the file given with `--config`.\n")
	sb.WriteString("Every field is optional. Unknown fields are rejected; run `planview validate` to check a file.\n\n")

	for _, section := range docs {
		sb.WriteString("### `[" + section.Name + "]`\n\n")
		sb.WriteString(section.Description + "\n\n")

		sb.WriteString("| Field | Type | Default | Description |\n")
		sb.WriteString("|-------|------|---------|-------------|\n")

		for _, field := range section.Fields {
			defaultVal := field.Default
			if defaultVal == "" {
				defaultVal = "-"
			}
			desc := field.Description
			if len(field.ValidValues) > 0 {
				desc += fmt.Sprintf(" (valid: `%s`)", strings.Join(field.ValidValues, "`, `"))
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | `%s` | %s |\n",
				field.Name, field.Type, defaultVal, desc))
		}
		sb.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Join(outDir, "docs"), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "docs", "configuration.md"), []byte(sb.String()), 0644)
}

// generateCLIDocs writes one flag table per command of the cobra tree
func generateCLIDocs(outDir string, root *cobra.Command) error {
	var sb strings.Builder

	sb.WriteString("# CLI Reference\n\n")
	sb.WriteString(root.Long + "\n\n")

	sb.WriteString("### Global Flags\n\n")
	writeFlagTable(&sb, root.PersistentFlags())

	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() {
			continue
		}
		sb.WriteString(fmt.Sprintf("### `%s %s`\n\n", root.Name(), cmd.Use))
		sb.WriteString(cmd.Short + "\n\n")
		if cmd.Long != "" {
			sb.WriteString(cmd.Long + "\n\n")
		}
		if cmd.HasLocalFlags() {
			writeFlagTable(&sb, cmd.LocalNonPersistentFlags())
		}
	}

	if err := os.MkdirAll(filepath.Join(outDir, "docs"), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "docs", "cli-reference.md"), []byte(sb.String()), 0644)
}

func writeFlagTable(sb *strings.Builder, flags *pflag.FlagSet) {
	sb.WriteString("| Flag | Description | Default |\n")
	sb.WriteString("|------|-------------|---------|\n")
	flags.VisitAll(func(f *pflag.Flag) {
		name := "`--" + f.Name + "`"
		if f.Shorthand != "" {
			name = "`-" + f.Shorthand + "`, " + name
		}
		def := f.DefValue
		if def == "" {
			def = "-"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | `%s` |\n", name, f.Usage, def))
	})
	sb.WriteString("\n")
}
