// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// System manages help content for the application
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Field Locator - Positioned Field Matching Tool")
	fmt.Println("==============================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  field-locator --file <document> --fields <fields.json> [options]")
	fmt.Println("  field-locator --tokens <tokens.json> --key <key> --value <value> [options]")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tDocument to extract tokens from (.pdf or image)")
	fmt.Fprintln(w, "  --tokens\t<path>\tJSON file with pre-extracted positioned tokens")
	fmt.Fprintln(w, "  --fields\t<path>\tJSON file listing key/value fields to locate")
	fmt.Fprintln(w, "  --key\t<key>\tSingle field key (used with --value)")
	fmt.Fprintln(w, "  --value\t<text>\tSingle field value to locate")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (default: stdout)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --pages\t<list>\tComma-separated page numbers to prefer (soft bias, never a filter)")
	fmt.Fprintln(w, "  --numeric\t\tForce digit-only comparison for the value")
	fmt.Fprintln(w, "  --radius\t<px>\tContext radius around a candidate span")
	fmt.Fprintln(w, "  --max-window\t<n>\tMaximum tokens per candidate span")
	fmt.Fprintln(w, "  --workers\t<n>\tConcurrent field lookups (default: number of CPUs)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay score breakdowns and alternatives")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of extraction and matching steps")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	fmt.Println("  Basic Usage:")
	h.colors["example"].Println("    field-locator --file invoice.pdf --fields fields.json")
	h.colors["example"].Println("    field-locator --file scan.png --key customer.billTo.zip --value 90210")
	fmt.Println("  Pre-extracted Tokens:")
	h.colors["example"].Println("    field-locator --tokens tokens.json --fields fields.json --format json")
	fmt.Println("  Configuration and Profiles:")
	h.colors["example"].Println("    field-locator --file scan.tiff --fields fields.json --profile scanned")
	h.colors["example"].Println("    field-locator --list-profiles --config field-locator.yaml")
}
