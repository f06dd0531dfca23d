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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/energycodes/codematch/pkg/table"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check that a table can be matched against",
		Description: `Validate the range and date bounds of a standards table.

Every minimum_*/maximum_* bound must be numeric with the lower bound not
above the upper bound, and every start_date/end_date must parse. Missing
bounds are not issues; the matcher skips those records.

# Examples

Validate a table of the loaded library:
  codematch validate --table motors

Validate a table file before adding it to a data directory:
  codematch validate --file ./boilers.yaml

Load the table from a ConfigMap and fail on issues (useful for CI/CD):
  codematch validate --file cm://standards/boilers --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "table",
				Aliases: []string{"T"},
				Usage:   "Name of a table in the loaded library",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage: `Path/URI of a single table to validate instead of a library table.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any record fails validation",
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			tableName := strings.TrimSpace(cmd.String("table"))
			filePath := strings.TrimSpace(cmd.String("file"))
			if (tableName == "") == (filePath == "") {
				return fmt.Errorf("exactly one of --table or --file is required")
			}

			var tbl table.Table
			if filePath != "" {
				slog.Info("loading table", "uri", filePath)
				tbl, err = table.LoadFileWithKubeconfig(ctx, filePath, cmd.String("kubeconfig"))
				if err != nil {
					return err
				}
				tableName = filePath
			} else {
				lib, libErr := loadLibrary(ctx, cmd)
				if libErr != nil {
					return libErr
				}
				if tbl, err = lib.Table(tableName); err != nil {
					return err
				}
			}

			result := table.Validate(tableName, tbl, version)
			slog.Info("validation completed",
				"table", tableName,
				"status", result.Summary.Status,
				"records", result.Summary.Records,
				"invalid", result.Summary.Invalid,
				"issues", result.Summary.Issues,
				"duration", result.Summary.Duration)

			if err := writeOutput(ctx, cmd, outFormat, result); err != nil {
				return fmt.Errorf("failed to write validation result: %w", err)
			}

			if cmd.Bool("fail-on-error") && result.Summary.Status == table.ValidationStatusFail {
				return fmt.Errorf("table %s failed validation: %d of %d records invalid",
					tableName, result.Summary.Invalid, result.Summary.Records)
			}
			return nil
		},
	}
}
