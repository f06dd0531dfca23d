// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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


package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/energycodes/codematch/pkg/serializer"
)

// run executes the root command with args and returns the JSON document
// written to a temporary --output file.
func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.json")
	full := append([]string{name}, args...)
	full = append(full, "--format", "json", "--output", out)

	if err := newRootCmd().Run(context.Background(), full); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc), string(data))
	return doc, nil
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{"valid yaml format", "yaml", serializer.FormatYAML, false},
		{"valid json format", "json", serializer.FormatJSON, false},
		{"valid table format", "table", serializer.FormatTable, false},
		{"upper case is accepted", "JSON", serializer.FormatJSON, false},
		{"invalid format xml", "xml", "", true},
		{"invalid format csv", "csv", "", true},
		{"empty format", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestCommandLister(t *testing.T) {
	commandLister(context.Background(), nil)

	var buf bytes.Buffer
	root := &cli.Command{
		Name:   "root",
		Writer: &buf,
		Commands: []*cli.Command{
			{Name: "visible1", Hidden: false},
			{Name: "hidden", Hidden: true},
			{Name: "visible2", Hidden: false},
		},
	}
	commandLister(context.Background(), root)
	assert.Equal(t, "visible1\nvisible2\n", buf.String())
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, name, root.Name)

	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotNil(t, c.Action, c.Name)
	}
	assert.Equal(t, []string{"find", "tables", "validate", "export", "serve"}, names)
}

func TestFindCommand(t *testing.T) {
	motor := []string{"find", "-T", "motors",
		"-c", "template=90.1-2013", "-c", "number_of_poles=4", "-c", "type=Enclosed"}

	t.Run("criteria and capacity", func(t *testing.T) {
		doc, err := run(t, append(motor, "--capacity", "5")...)
		require.NoError(t, err)
		assert.Equal(t, "MatchResult", doc["kind"])
		assert.Equal(t, "motors", doc["table"])
		assert.EqualValues(t, 1, doc["count"])

		records := doc["records"].([]any)
		require.Len(t, records, 1)
		assert.InDelta(t, 0.917, records[0].(map[string]any)["nominal_full_load_efficiency"], 1e-9)
	})

	t.Run("criteria only", func(t *testing.T) {
		doc, err := run(t, motor...)
		require.NoError(t, err)
		assert.EqualValues(t, 10, doc["count"])
	})

	t.Run("one", func(t *testing.T) {
		doc, err := run(t, append(motor, "--one")...)
		require.NoError(t, err)
		assert.EqualValues(t, 1, doc["count"])
	})

	t.Run("date probe", func(t *testing.T) {
		doc, err := run(t, "find", "-T", "unitary_acs",
			"-c", "template=90.1-2019", "-c", "subcategory=Split System",
			"--capacity", "50000", "--date", "2024-06-01", "--one")
		require.NoError(t, err)
		records := doc["records"].([]any)
		require.Len(t, records, 1)
		assert.InDelta(t, 13.4, records[0].(map[string]any)["minimum_seasonal_efficiency"], 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		doc, err := run(t, "find", "-T", "motors", "-c", "type=Submersible")
		require.NoError(t, err)
		assert.EqualValues(t, 0, doc["count"])
	})

	t.Run("errors", func(t *testing.T) {
		_, err := run(t, "find", "-T", "motors", "-c", "novalue")
		assert.Error(t, err)

		_, err = run(t, "find", "-T", "boilers")
		assert.Error(t, err)

		_, err = run(t, "find", "-T", "unitary_acs", "--date", "someday")
		assert.Error(t, err)

		_, err = run(t, "find", "-c", "type=Enclosed")
		assert.Error(t, err, "table is required")

		err = newRootCmd().Run(context.Background(), []string{name, "find", "-T", "motors", "--format", "xml"})
		assert.Error(t, err)
	})
}

func TestTablesCommand(t *testing.T) {
	doc, err := run(t, "tables")
	require.NoError(t, err)
	assert.Equal(t, "Library", doc["kind"])
	assert.Equal(t, "embedded", doc["source"])
	assert.Len(t, doc["tables"], 5)
}

func TestValidateCommand(t *testing.T) {
	t.Run("library table passes", func(t *testing.T) {
		doc, err := run(t, "validate", "--table", "motors", "--fail-on-error")
		require.NoError(t, err)
		assert.Equal(t, "TableValidation", doc["kind"])
		assert.Equal(t, "pass", doc["summary"].(map[string]any)["status"])
	})

	bad := filepath.Join(t.TempDir(), "boilers.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(
		"- {name: a, minimum_capacity: 10, maximum_capacity: 5}\n"+
			"- {name: b, minimum_capacity: 0, maximum_capacity: 5}\n"), 0o600))

	t.Run("file with issues reports them", func(t *testing.T) {
		doc, err := run(t, "validate", "--file", bad)
		require.NoError(t, err)
		summary := doc["summary"].(map[string]any)
		assert.Equal(t, "fail", summary["status"])
		assert.EqualValues(t, 1, summary["invalid"])
	})

	t.Run("fail on error", func(t *testing.T) {
		_, err := run(t, "validate", "--file", bad, "--fail-on-error")
		assert.Error(t, err)
	})

	t.Run("table or file required", func(t *testing.T) {
		_, err := run(t, "validate")
		assert.Error(t, err)

		_, err = run(t, "validate", "--table", "motors", "--file", bad)
		assert.Error(t, err)
	})
}

func TestExportCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "standards.db")

	doc, err := run(t, "export", "--sqlite", db)
	require.NoError(t, err)
	assert.Equal(t, "Library", doc["kind"])
	assert.FileExists(t, db)

	doc, err = run(t, "--data", db, "find", "-T", "prm_swh_bldg_type", "-c", "swh_building_type=Office")
	require.NoError(t, err)
	records := doc["records"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, "Electric Resistance Storage", records[0].(map[string]any)["baseline_heating_method"])
}

func TestExportCommandRequiresPath(t *testing.T) {
	_, err := run(t, "export")
	assert.Error(t, err)
}
