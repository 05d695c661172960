// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldsEnveloped(t *testing.T) {
	data := []byte(`{"fields":[
		{"key":"customer.billTo.zip","value":"90210","page":2},
		{"key":"","value":"Acme Corp"},
		{"key":"dropped","value":"   "}
	]}`)

	fields, err := ParseFields(data)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "customer.billTo.zip", fields[0].Key)
	assert.Equal(t, "90210", fields[0].Value)
	assert.Equal(t, 2, fields[0].PageHint)
	assert.Empty(t, fields[1].Key)
}

func TestParseFieldsBareArray(t *testing.T) {
	data := []byte(`[{"key":"total","value":"$1,234.56"}]`)
	fields, err := ParseFields(data)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "$1,234.56", fields[0].Value)
	assert.Zero(t, fields[0].PageHint)
}

func TestParseFieldsGarbage(t *testing.T) {
	_, err := ParseFields([]byte(`{"fields": 12`))
	assert.Error(t, err)
}

const docaiSample = `{
  "documents": [{
    "properties": [{
      "metadata": {"metaDataMap": {"generator": "WF-DocAI", "engine": "tesseract", "psm": "6"}}
    }],
    "pages": [{
      "page": 1,
      "width": 612,
      "height": 792,
      "elements": [
        {"content": "Bill To: Acme Corp", "page": 1,
         "boundingBox": {"x": 10, "y": 20, "width": 150, "height": 12}},
        {"content": "   ",
         "boundingBox": {"x": 0, "y": 0, "width": 5, "height": 5}},
        {"content": "90210",
         "boundingBox": {"x": 10, "y": 40, "width": 48, "height": 12}}
      ]
    }]
  }]
}`

func TestParseDocAITokens(t *testing.T) {
	tokens, err := ParseDocAITokens([]byte(docaiSample))
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "Bill To: Acme Corp", tokens[0].Text)
	assert.Equal(t, 1, tokens[0].Page)
	assert.Equal(t, 160.0, tokens[0].X1)
	assert.Equal(t, 32.0, tokens[0].Y1)

	// Element without its own page number inherits the page's.
	assert.Equal(t, 1, tokens[1].Page)
}

func TestParseDocAITokensEmptyDocuments(t *testing.T) {
	_, err := ParseDocAITokens([]byte(`{"documents":[]}`))
	assert.Error(t, err)
}

func TestParseDocAIMetadata(t *testing.T) {
	meta, err := ParseDocAIMetadata([]byte(docaiSample))
	require.NoError(t, err)
	assert.Equal(t, "tesseract", meta["engine"])
	assert.Equal(t, "6", meta["psm"])
}
