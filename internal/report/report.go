// Package report interprets the sections of an update log: it checks
// whether the pretend and update phases succeeded, collects the parsed
// package records, and renders a human-readable summary.
package report

import (
	"fmt"
	"strings"

	"github.com/DevenBL/gentoo-update/internal/common/output"
	"github.com/DevenBL/gentoo-update/internal/parser"
)

// Section names the update script emits.
const (
	SectionPretend      = "{{ PRETEND EMERGE }}"
	SectionUpdateSystem = "{{ UPDATE SYSTEM }}"
)

// Success marker lines the update script logs per phase.
const (
	pretendSuccessMarker = "emerge pretend was successful, updating..."
	worldSuccessMarker   = "update was successful"
	glsaSuccessMarker    = "glsa update was successful"
)

// Update modes the script supports.
const (
	ModeWorld = "@world"
	ModeGLSA  = "GLSA"
)

// Report summarizes one update run.
type Report struct {
	// PretendRan is true when the log contains a pretend section.
	PretendRan     bool
	PretendSuccess bool

	// Mode is the update type reported by the script (@world or GLSA),
	// empty when the update section is missing or too short.
	Mode          string
	UpdateRan     bool
	UpdateSuccess bool

	Packages []*parser.PackageRecord
	Errors   []*parser.MalformedLineError

	// Downgraded lists ebuild records whose new version orders below
	// the previous one.
	Downgraded []*parser.PackageRecord

	// Watched lists records matching the configured watchlist.
	Watched []*parser.PackageRecord
}

// Generate builds a report from split log sections. A nil watchlist is
// treated as empty.
func Generate(sections *parser.Sections, watchlist *Watchlist) *Report {
	r := &Report{}

	if sections.Has(SectionPretend) {
		r.PretendRan = true
		r.PretendSuccess = containsLine(sections.Get(SectionPretend), pretendSuccessMarker)
	}

	if sections.Has(SectionUpdateSystem) {
		r.UpdateRan = true
		lines := sections.Get(SectionUpdateSystem)
		r.Mode = updateMode(lines)

		switch r.Mode {
		case ModeWorld:
			r.UpdateSuccess = containsLine(lines, worldSuccessMarker)
		case ModeGLSA:
			r.UpdateSuccess = containsLine(lines, glsaSuccessMarker)
		}

		details := parser.ParseUpdateDetails(lines)
		r.Packages = details.Packages
		r.Errors = details.Errors
	}

	for _, rec := range r.Packages {
		if rec.Kind == parser.KindEbuild && rec.OldVersion != "" &&
			CompareVersions(rec.NewVersion, rec.OldVersion) < 0 {
			r.Downgraded = append(r.Downgraded, rec)
		}
		if watchlist != nil {
			if _, ok := watchlist.Match(rec.Name); ok {
				r.Watched = append(r.Watched, rec)
			}
		}
	}

	return r
}

// updateMode extracts the update type from the section's second line,
// where the script logs "update mode: <type>" style invocations. The
// second field of that line is the mode token.
func updateMode(lines []string) string {
	if len(lines) < 2 {
		return ""
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// containsLine reports whether any line equals the marker exactly.
func containsLine(lines []string, marker string) bool {
	for _, line := range lines {
		if line == marker {
			return true
		}
	}
	return false
}

// Counts tallies records per coarse outcome.
type Counts struct {
	NewPackages int
	Updates     int
	ReEmerges   int
	Undefined   int
	Uninstalls  int
	Blocks      int
}

// Count tallies the report's records.
func (r *Report) Count() Counts {
	var c Counts
	for _, rec := range r.Packages {
		switch rec.Kind {
		case parser.KindEbuild:
			switch rec.Status {
			case parser.StatusNewPackage:
				c.NewPackages++
			case parser.StatusUpdate:
				c.Updates++
			case parser.StatusReEmerge:
				c.ReEmerges++
			default:
				c.Undefined++
			}
		case parser.KindUninstall:
			c.Uninstalls++
		case parser.KindBlocks:
			c.Blocks++
		}
	}
	return c
}

// Render prints the report to stdout.
func (r *Report) Render() {
	fmt.Println()
	output.Header.Println("Update Report")
	fmt.Println()

	if r.PretendRan {
		if r.PretendSuccess {
			output.Success.Println("  Pretend completed without errors")
		} else {
			output.Error.Println("  Pretend exited with errors")
		}
	}

	switch {
	case !r.UpdateRan:
		output.Warning.Println("  No update section found in the log")
	case r.Mode != ModeWorld && r.Mode != ModeGLSA:
		output.Error.Printf("  %q is a wrong update type (correct types: %s and %s)\n",
			r.Mode, ModeWorld, ModeGLSA)
	case r.UpdateSuccess:
		output.Success.Printf("  %s update was successful\n", r.Mode)
	default:
		output.Error.Printf("  %s update was NOT successful\n", r.Mode)
	}

	c := r.Count()
	fmt.Println()
	fmt.Printf("  New packages: %d\n", c.NewPackages)
	fmt.Printf("  Updates:      %d\n", c.Updates)
	fmt.Printf("  Re-emerges:   %d\n", c.ReEmerges)
	fmt.Printf("  Uninstalls:   %d\n", c.Uninstalls)
	fmt.Printf("  Blocks:       %d\n", c.Blocks)

	if len(r.Packages) > 0 {
		fmt.Println()
		for _, rec := range r.Packages {
			renderRecord(rec)
		}
	}

	if len(r.Downgraded) > 0 {
		fmt.Println()
		output.Warning.Printf("  %d package(s) were downgraded\n", len(r.Downgraded))
	}

	if len(r.Watched) > 0 {
		fmt.Println()
		output.Info.Println("  Watched packages touched by this run:")
		for _, rec := range r.Watched {
			output.Package.Printf("    %s\n", rec.Name)
		}
	}

	if len(r.Errors) > 0 {
		fmt.Println()
		output.Warning.Printf("  %d line(s) could not be parsed:\n", len(r.Errors))
		for _, e := range r.Errors {
			output.Dim.Printf("    %s\n", e.Reason)
		}
	}
	fmt.Println()
}

// renderRecord prints a single package record line.
func renderRecord(rec *parser.PackageRecord) {
	switch rec.Kind {
	case parser.KindEbuild:
		statusStr := output.Sprintf(output.StatusColor(string(rec.Status)), "[%s]", rec.Status)
		if rec.OldVersion != "" {
			fmt.Printf("  %s %s %s → %s (%s)\n",
				statusStr, output.FormatPackage(rec.Name), rec.OldVersion, rec.NewVersion, rec.Repo)
		} else {
			fmt.Printf("  %s %s %s (%s)\n",
				statusStr, output.FormatPackage(rec.Name), rec.NewVersion, rec.Repo)
		}
	case parser.KindUninstall:
		statusStr := output.Sprintf(output.StatusColor("Uninstall"), "[Uninstall]")
		fmt.Printf("  %s %s (%s)\n", statusStr, output.FormatPackage(rec.Name), rec.Repo)
	case parser.KindBlocks:
		statusStr := output.Sprintf(output.StatusColor("Blocks"), "[Blocks]")
		blocked := strings.Join(rec.Attributes["blocked_package"], " ")
		fmt.Printf("  %s %s blocks %s\n", statusStr, output.FormatPackage(rec.Name), blocked)
	}
}
