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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/energycodes/codematch/pkg/defaults"
	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/library"
	"github.com/energycodes/codematch/pkg/match"
	"github.com/energycodes/codematch/pkg/serializer"
	"github.com/energycodes/codematch/pkg/server"
	"github.com/energycodes/codematch/pkg/table"
)

// Route paths served by Handler.
const (
	RouteFind    = "/v1/find"
	RouteFindOne = "/v1/find-one"
	RouteTables  = "/v1/tables"
)

// Handler answers find requests against a table library.
type Handler struct {
	lib      *library.Library
	engine   *match.Engine
	version  string
	cacheTTL time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithEngine sets the engine used for matching.
func WithEngine(e *match.Engine) HandlerOption {
	return func(h *Handler) {
		if e != nil {
			h.engine = e
		}
	}
}

// WithVersion sets the version stamped on response documents.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// WithCacheTTL sets the max-age advertised on find responses.
func WithCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.cacheTTL = ttl
	}
}

// NewHandler returns a Handler over lib.
func NewHandler(lib *library.Library, opts ...HandlerOption) *Handler {
	h := &Handler{
		lib:      lib,
		engine:   match.NewEngine(),
		version:  versionDefault,
		cacheTTL: defaults.FindCacheTTL,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the API routes keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		RouteFind:    h.HandleFind,
		RouteFindOne: h.HandleFindOne,
		RouteTables:  h.HandleTables,
	}
}

// HandleFind returns every record of a table matching the request.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false)
}

// HandleFindOne returns the first matching record, if any. Records in the
// response holds zero or one entry.
func (h *Handler) HandleFindOne(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, one bool) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.FindHandlerTimeout)
	defer cancel()

	var req *match.Request
	var err error

	switch r.Method {
	case http.MethodGet:
		req, err = match.ParseRequestFromValues(r.URL.Query())
	case http.MethodPost:
		req, err = match.ParseRequestFromBody(r.Body, r.Header.Get("Content-Type"))
		defer func() {
			if r.Body != nil {
				r.Body.Close()
			}
		}()
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cmerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "POST"},
			})
		return
	}

	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid find request", nil)
		return
	}
	if err = req.Validate(); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid find request", nil)
		return
	}

	probes, err := req.Probes()
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid find request", nil)
		return
	}

	tbl, err := h.lib.Table(req.Table)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to load table", nil)
		return
	}

	slog.Debug("find request",
		"table", req.Table,
		"criteria", req.Criteria.String(),
		"probes", probes,
		"one", one,
	)

	records, err := h.find(ctx, tbl, req.Criteria, probes, one)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to match records", map[string]any{"table": req.Table})
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	serializer.RespondJSON(w, http.StatusOK, match.NewResult(req.Table, req.Criteria, probes, records, h.version))
}

func (h *Handler) find(ctx context.Context, tbl table.Table, c match.Criteria, p match.Probes, one bool) ([]table.Record, error) {
	if !one {
		return h.engine.FindContext(ctx, tbl, c, p)
	}
	rec, err := h.engine.FindOneContext(ctx, tbl, c, p)
	if err != nil || rec == nil {
		return nil, err
	}
	return []table.Record{rec}, nil
}

// HandleTables lists the tables of the library.
func (h *Handler) HandleTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cmerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}
	serializer.RespondJSON(w, http.StatusOK, h.lib.Catalog(h.version))
}
