// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"strings"
	"testing"
)

type stubFormatter struct{ name string }

func (s *stubFormatter) Format(fields []LocatedField, options FormatterOptions) (string, error) {
	return s.name, nil
}
func (s *stubFormatter) Name() string          { return s.name }
func (s *stubFormatter) Description() string   { return "stub" }
func (s *stubFormatter) FileExtension() string { return ".stub" }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubFormatter{name: "alpha"})
	r.Register(&stubFormatter{name: "beta"})

	if _, ok := r.Get("alpha"); !ok {
		t.Error("expected alpha to be registered")
	}
	if _, ok := r.Get("gamma"); ok {
		t.Error("did not expect gamma")
	}
	if len(r.List()) != 2 {
		t.Errorf("expected 2 formatters, got %d", len(r.List()))
	}
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()
	first := &stubFormatter{name: "dup"}
	second := &stubFormatter{name: "dup"}
	r.Register(first)
	r.Register(second)

	got, _ := r.Get("dup")
	if got != Formatter(second) {
		t.Error("expected later registration to win")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export("no-such-format", nil, FormatterOptions{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "no-such-format") {
		t.Errorf("error should name the format: %v", err)
	}
}
