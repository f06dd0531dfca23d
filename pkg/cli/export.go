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
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the loaded library into a SQLite database",
		Description: `Export every table of the loaded library into SQLite, one SQL table per
standards table. The database can be served back with --data.

  codematch --data ./tables export --sqlite standards.db
  codematch --data standards.db find -T motors -c type=Enclosed`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "sqlite",
				Required: true,
				Usage:    "Path of the SQLite database to write; existing tables are replaced",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			path := strings.TrimSpace(cmd.String("sqlite"))
			if path == "" {
				return fmt.Errorf("--sqlite path is required")
			}

			lib, err := loadLibrary(ctx, cmd)
			if err != nil {
				return err
			}
			if err := lib.SaveSQLite(ctx, path); err != nil {
				return fmt.Errorf("failed to export library to %s: %w", path, err)
			}
			slog.Info("library exported", "source", lib.Source(), "path", path, "tables", len(lib.Names()))

			return writeOutput(ctx, cmd, outFormat, lib.Catalog(version))
		},
	}
}
