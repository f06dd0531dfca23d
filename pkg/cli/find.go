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

	"github.com/energycodes/codematch/pkg/match"
	"github.com/energycodes/codematch/pkg/table"
)

// probe flag names mapped to their match options.
var probeFlags = []struct {
	name  string
	usage string
	opt   func(float64) match.Option
}{
	{"capacity", "Capacity probe; keeps rows with minimum_capacity < c <= maximum_capacity", match.WithCapacity},
	{"volume", "Storage volume probe; keeps rows with minimum_storage < v <= maximum_storage", match.WithVolume},
	{"fan-motor-bhp", "Fan motor brake horsepower probe, matched without a capacity bump", match.WithFanMotorBHP},
	{"area", "Floor area probe; keeps rows with minimum_area < a <= maximum_area", match.WithArea},
	{"num-floors", "Number of floors probe; keeps rows with minimum_floors <= n <= maximum_floors", match.WithNumFloors},
}

func findCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "table",
			Aliases:  []string{"T"},
			Required: true,
			Usage:    "Name of the table to search",
		},
		&cli.StringSliceFlag{
			Name:    "criteria",
			Aliases: []string{"c"},
			Usage:   `Exact match as field=value, repeatable. Numbers compare numerically; quote a value ("4") to keep it a string`,
		},
	}
	for _, p := range probeFlags {
		flags = append(flags, &cli.FloatFlag{Name: p.name, Usage: p.usage})
	}
	flags = append(flags,
		&cli.StringFlag{
			Name:  "date",
			Usage: "Date probe (YYYY-MM-DD or RFC 3339); keeps rows with start_date < d <= end_date",
		},
		&cli.BoolFlag{
			Name:  "one",
			Usage: "Return only the first matching record",
		},
		&cli.BoolFlag{
			Name:  "record-wildcards",
			Usage: `Let "Any" in a record match any criteria value`,
		},
		outputFlag(),
		formatFlag(),
	)

	return &cli.Command{
		Name:                  "find",
		EnableShellCompletion: true,
		Usage:                 "Find records of a standards table matching criteria and probes",
		Description: `Search a table by exact criteria and optional range probes.

Passes run in a fixed order: criteria, capacity, volume, fan motor bhp,
date, area, floors. A whole-number capacity or volume is bumped by 1% before
matching and retried once at 99% when nothing matches.

# Examples

Motor efficiency for a 5 hp enclosed 4-pole motor:
  codematch find -T motors -c template=90.1-2019 -c number_of_poles=4 -c type=Enclosed --capacity 5

First unitary AC row in effect on a date:
  codematch find -T unitary_acs -c template=90.1-2019 --capacity 100000 --date 2024-06-01 --one`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			req, err := buildRequestFromCmd(cmd)
			if err != nil {
				return fmt.Errorf("error parsing find input parameter: %w", err)
			}
			criteria, opts, probes := req.criteria, req.opts, match.BuildProbes(req.opts...)

			lib, err := loadLibrary(ctx, cmd)
			if err != nil {
				return err
			}
			tbl, err := lib.Table(req.table)
			if err != nil {
				return err
			}

			engine := match.NewEngine(match.WithRecordWildcards(cmd.Bool("record-wildcards")))

			var records []table.Record
			if cmd.Bool("one") {
				rec, findErr := engine.FindOne(tbl, criteria, opts...)
				if findErr != nil {
					return fmt.Errorf("find in %s failed: %w", req.table, findErr)
				}
				if rec != nil {
					records = []table.Record{rec}
				}
			} else {
				records, err = engine.Find(tbl, criteria, opts...)
				if err != nil {
					return fmt.Errorf("find in %s failed: %w", req.table, err)
				}
			}

			slog.Debug("find complete", "table", req.table, "criteria", criteria.String(), "records", len(records))

			return writeOutput(ctx, cmd, outFormat, match.NewResult(req.table, criteria, probes, records, version))
		},
	}
}

type findRequest struct {
	table    string
	criteria match.Criteria
	opts     []match.Option
}

// buildRequestFromCmd collects the table, criteria and probe options of a
// find command.
func buildRequestFromCmd(cmd *cli.Command) (*findRequest, error) {
	req := &findRequest{table: strings.TrimSpace(cmd.String("table"))}
	if req.table == "" {
		return nil, fmt.Errorf("table is required")
	}

	criteria, err := match.ParseCriteriaPairs(cmd.StringSlice("criteria"))
	if err != nil {
		return nil, err
	}
	req.criteria = criteria

	for _, p := range probeFlags {
		if cmd.IsSet(p.name) {
			req.opts = append(req.opts, p.opt(cmd.Float(p.name)))
		}
	}

	if s := strings.TrimSpace(cmd.String("date")); s != "" {
		d, err := table.Date(s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", s, err)
		}
		req.opts = append(req.opts, match.WithDate(d))
	}
	return req, nil
}
