// Package parser turns the raw text log written during an update run into
// structured data: it splits the log into named sections and extracts one
// record per package action (ebuild merge, block, uninstall) found in a
// section's lines.
package parser

import (
	"regexp"
	"strings"
)

const (
	// lineMarker separates the logging preamble (timestamp, level) from
	// the payload text on every line the updater logger writes.
	lineMarker = " ::: "

	// SectionBeginning is the implicit section holding lines seen before
	// the first section header.
	SectionBeginning = "beginning"

	// SectionFinal holds the last line that lacked the line marker.
	SectionFinal = "final"
)

// sectionHeaderRegex matches section headers like "{{ UPDATE SYSTEM }}"
var sectionHeaderRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// Sections is the result of splitting a log into named sections.
// Section names keep the order in which their headers first appeared.
type Sections struct {
	names []string
	lines map[string][]string
}

// Names returns the section names in the order they first appeared.
func (s *Sections) Names() []string {
	return s.names
}

// Has reports whether a section with the given name exists.
func (s *Sections) Has(name string) bool {
	_, ok := s.lines[name]
	return ok
}

// Get returns the content lines of the named section.
// A missing section yields a nil slice.
func (s *Sections) Get(name string) []string {
	return s.lines[name]
}

// Final returns the trailing unmarked line, if one was seen.
func (s *Sections) Final() (string, bool) {
	lines, ok := s.lines[SectionFinal]
	if !ok || len(lines) == 0 {
		return "", false
	}
	return lines[0], true
}

// Split partitions log lines into named sections.
//
// A line containing the marker is trimmed to its payload; if the payload
// matches the "{{ ... }}" header pattern it starts a new section named by
// the full payload (braces included) and contributes no content line,
// otherwise the payload is appended to the current section. Lines without
// the marker land in the single-slot "final" bucket, which keeps only the
// last such line. Split never fails; malformed input only produces
// unexpected section names or content.
func Split(lines []string) *Sections {
	s := &Sections{
		names: []string{SectionBeginning},
		lines: map[string][]string{SectionBeginning: {}},
	}

	current := SectionBeginning
	for _, raw := range lines {
		idx := strings.Index(raw, lineMarker)
		if idx < 0 {
			// Single-slot bucket: only the last unmarked line survives.
			if _, seen := s.lines[SectionFinal]; !seen {
				s.names = append(s.names, SectionFinal)
			}
			s.lines[SectionFinal] = []string{raw}
			continue
		}

		payload := strings.TrimSpace(raw[idx+len(lineMarker):])
		if sectionHeaderRegex.MatchString(payload) {
			current = payload
			if _, seen := s.lines[current]; !seen {
				s.names = append(s.names, current)
				s.lines[current] = []string{}
			}
			continue
		}

		s.lines[current] = append(s.lines[current], payload)
	}

	return s
}
