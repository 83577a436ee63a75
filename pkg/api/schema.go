// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"github.com/telekom/skylark/pkg/analysis"
)

// openapiDoc describes the read endpoints with schemas generated from the
// analysis result types, so the document never drifts from the code.
func openapiDoc() (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "skylark api",
			Description: "Stored traceroute runs, their latency statistics and the merged topology.",
			Version:     "0.1.0",
		},
		Paths: openapi3.NewPaths(),
	}

	gen := openapi3gen.NewGenerator()
	add := func(path, description string, value any) error {
		ref, err := gen.NewSchemaRefForValue(value, nil)
		if err != nil {
			return ErrCreateOpenapiSchema{path: path, err: err}
		}
		op := openapi3.NewOperation()
		op.Description = description
		op.AddResponse(http.StatusOK,
			openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(ref),
		)
		doc.Paths.Set(path, &openapi3.PathItem{Get: op})
		return nil
	}

	endpoints := []struct {
		path        string
		description string
		value       any
	}{
		{"/v1/targets", "The probed targets and their run counts", []targetInfo{}},
		{"/v1/stats", "One latency summary per target", []analysis.TargetSummary{}},
		{"/v1/stats/{target}", "The per-hop latency breakdown of one target", analysis.TargetStats{}},
		{"/v1/topology", "The merged forwarding topology", analysis.Graph{}},
	}
	for _, e := range endpoints {
		if err := add(e.path, e.description, e.value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
