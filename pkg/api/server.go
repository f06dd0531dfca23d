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


package api

import (
	"context"
	"log/slog"

	"github.com/energycodes/codematch/pkg/library"
	"github.com/energycodes/codematch/pkg/logging"
	"github.com/energycodes/codematch/pkg/match"
	"github.com/energycodes/codematch/pkg/server"
)

const (
	name           = "codematchd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/energycodes/codematch/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Options configures Serve.
type Options struct {
	// DataSource is passed to library.Load; empty serves the embedded tables.
	DataSource string
	// Port overrides the PORT environment variable when positive.
	Port int
	// RecordWildcards lets "Any" in a record match any criteria value.
	RecordWildcards bool
}

// Serve loads the table library and runs the API server until ctx is
// cancelled or the process receives SIGINT or SIGTERM.
func Serve(ctx context.Context, opts Options) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	lib, err := library.Load(ctx, opts.DataSource)
	if err != nil {
		slog.Error("failed to load table library", "source", opts.DataSource, "error", err)
		return err
	}
	slog.Info("table library loaded", "source", lib.Source(), "tables", lib.Names())

	s := newServer(lib, opts)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

func newServer(lib *library.Library, opts Options) *server.Server {
	h := NewHandler(lib,
		WithVersion(version),
		WithEngine(match.NewEngine(match.WithRecordWildcards(opts.RecordWildcards))),
	)

	cfg := server.NewConfig()
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}

	return server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)
}
