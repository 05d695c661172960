// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package records parses upstream document-understanding output into field
// queries and, where the payload carries element geometry, into positioned
// tokens. Two payload shapes are accepted: the flat fields form
// ({"fields":[{key,value,page}]} or a bare array) and the wrapped DocAI
// form (documents -> pages -> elements).
package records

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"field-locator/internal/token"
)

// Field is one (key, value, page-hint) triple from the upstream extractor.
// Key may be empty; PageHint is advisory and may be absent or wrong.
type Field struct {
	Key      string `json:"key,omitempty"`
	Value    string `json:"value"`
	PageHint int    `json:"page,omitempty"`
}

type fieldsEnvelope struct {
	Fields []Field `json:"fields"`
}

// ParseFields decodes field records from either the enveloped or the bare
// array form. Records with blank values are dropped; the engine would
// return no match for them anyway.
func ParseFields(data []byte) ([]Field, error) {
	var bare []Field
	if err := sonic.Unmarshal(data, &bare); err == nil {
		return pruneBlank(bare), nil
	}

	var env fieldsEnvelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unrecognized fields payload: %w", err)
	}
	return pruneBlank(env.Fields), nil
}

func pruneBlank(fields []Field) []Field {
	out := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

// DocAI payload shapes, mirroring the upstream generator.

type docEnvelope struct {
	Documents []document `json:"documents"`
}

type document struct {
	Properties []property `json:"properties"`
	Pages      []docPage  `json:"pages"`
}

type property struct {
	Metadata struct {
		MetaDataMap map[string]string `json:"metaDataMap"`
	} `json:"metadata"`
}

type docPage struct {
	Page     int       `json:"page"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Elements []element `json:"elements"`
}

type element struct {
	Content     string `json:"content"`
	Page        int    `json:"page"`
	BoundingBox box    `json:"boundingBox"`
}

type box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ParseDocAITokens converts a wrapped DocAI payload's page elements into
// positioned tokens. Elements without content are skipped; an element
// missing its own page number inherits the page it sits on.
func ParseDocAITokens(data []byte) ([]token.Token, error) {
	var env docEnvelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding docai payload: %w", err)
	}
	if len(env.Documents) == 0 {
		return nil, fmt.Errorf("docai payload has no documents")
	}

	var tokens []token.Token
	for _, doc := range env.Documents {
		for _, pg := range doc.Pages {
			for _, el := range pg.Elements {
				if strings.TrimSpace(el.Content) == "" {
					continue
				}
				page := el.Page
				if page == 0 {
					page = pg.Page
				}
				tokens = append(tokens, token.Token{
					Page: page,
					Text: el.Content,
					X0:   el.BoundingBox.X,
					Y0:   el.BoundingBox.Y,
					X1:   el.BoundingBox.X + el.BoundingBox.Width,
					Y1:   el.BoundingBox.Y + el.BoundingBox.Height,
				})
			}
		}
	}
	return tokens, nil
}

// ParseDocAIMetadata returns the payload's metaDataMap entries merged
// across properties. Missing metadata is not an error.
func ParseDocAIMetadata(data []byte) (map[string]string, error) {
	var env docEnvelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding docai payload: %w", err)
	}

	meta := make(map[string]string)
	for _, doc := range env.Documents {
		for _, prop := range doc.Properties {
			for k, v := range prop.Metadata.MetaDataMap {
				meta[k] = v
			}
		}
	}
	return meta, nil
}
