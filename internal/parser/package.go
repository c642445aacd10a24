package parser

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// packageLineRegex identifies lines carrying a bracketed status token.
var packageLineRegex = regexp.MustCompile(`\[(.+?)\]`)

// okMarker is a no-op status line emitted by the update script; it
// matches the bracket pattern but describes no package action.
const okMarker = "[ ok ]"

// ClassifyStatus maps a bracketed ebuild status token to a Status.
// The substring tests are case-sensitive and ordered: N wins over R,
// R wins over U. The ordering matters when several letters co-occur
// (e.g. "rR") and must not be reordered.
func ClassifyStatus(statusToken string) Status {
	switch {
	case strings.Contains(statusToken, "N"):
		return StatusNewPackage
	case strings.Contains(statusToken, "R"):
		return StatusReEmerge
	case strings.Contains(statusToken, "U"):
		return StatusUpdate
	default:
		return StatusUndefined
	}
}

// ClassifyKind maps the first token of a package line to its variant.
func ClassifyKind(firstToken string) Kind {
	switch {
	case strings.Contains(firstToken, "ebuild"):
		return KindEbuild
	case strings.Contains(firstToken, "blocks"):
		return KindBlocks
	case strings.Contains(firstToken, "uninstall"):
		return KindUninstall
	default:
		return KindUnknown
	}
}

// UpdateDetails aggregates the package records parsed from one section.
// Malformed lines are skipped but recorded so callers can surface them.
type UpdateDetails struct {
	Packages []*PackageRecord
	Errors   []*MalformedLineError
}

// ParseUpdateDetails extracts package records from the lines of a single
// log section. Lines without a bracketed token and the literal "[ ok ]"
// marker are filtered out; lines whose first token matches no known
// variant are skipped silently. Output order equals input line order.
func ParseUpdateDetails(lines []string) *UpdateDetails {
	details := &UpdateDetails{}

	for _, line := range lines {
		if line == okMarker || !packageLineRegex.MatchString(line) {
			continue
		}

		tokens := Tokenize(line)
		if len(tokens) == 0 {
			continue
		}

		var rec *PackageRecord
		var err error
		switch ClassifyKind(tokens[0]) {
		case KindEbuild:
			rec, err = parseEbuild(line, tokens)
		case KindBlocks:
			rec, err = parseBlocks(line, tokens)
		case KindUninstall:
			rec, err = parseUninstall(line, tokens)
		default:
			continue
		}

		if err != nil {
			var malformed *MalformedLineError
			if errors.As(err, &malformed) {
				details.Errors = append(details.Errors, malformed)
			}
			continue
		}
		details.Packages = append(details.Packages, rec)
	}

	return details
}

// parseEbuild builds a record from an ebuild line, e.g.
//
//	[ebuild     U  ] sys-devel/gnuconfig-20230731::gentoo [20230121::gentoo] 72 KiB
func parseEbuild(line string, tokens []string) (*PackageRecord, error) {
	if len(tokens) < 2 {
		return nil, &MalformedLineError{Line: line, Reason: "ebuild line has no package token"}
	}

	base := tokens[1]
	parts := strings.SplitN(base, "::", 2)
	if len(parts) != 2 {
		return nil, &MalformedLineError{Line: line, Reason: "package token lacks ::repo suffix"}
	}
	nameVersion, repo := parts[0], parts[1]

	name := splitName(nameVersion)
	if name == "" {
		return nil, &MalformedLineError{Line: line, Reason: "package token has no name component"}
	}

	rec := &PackageRecord{
		Kind:       KindEbuild,
		Name:       name,
		NewVersion: strings.TrimPrefix(nameVersion, name+"-"),
		Status:     ClassifyStatus(tokens[0]),
		Repo:       repo,
	}

	// A previous version shows up as a bracketed [old::repo] token right
	// after the package token; new installs simply do not have one.
	if len(tokens) > 2 && strings.HasPrefix(tokens[2], "[") && strings.Contains(tokens[2], "::") {
		old := strings.TrimPrefix(tokens[2], "[")
		rec.OldVersion = old[:strings.Index(old, "::")]
	}

	for _, tok := range tokens {
		if !strings.Contains(tok, `="`) {
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		value := strings.TrimSuffix(strings.TrimPrefix(kv[1], `"`), `"`)
		rec.addAttribute(kv[0], strings.Split(value, " "))
	}

	return rec, nil
}

// parseBlocks builds a record from a blocks line, e.g.
//
//	[blocks b      ] <perl-core/Compress-Raw-Zlib-2.204.1_rc ("<perl-core/..." is soft blocking virtual/perl-Compress-Raw-Zlib-2.204.1_rc)
func parseBlocks(line string, tokens []string) (*PackageRecord, error) {
	if len(tokens) < 2 {
		return nil, &MalformedLineError{Line: line, Reason: "blocks line has no atom token"}
	}
	if len(tokens[1]) < 2 {
		return nil, &MalformedLineError{Line: line, Reason: "blocks atom token too short"}
	}

	rec := &PackageRecord{
		Kind: KindBlocks,
		// Drop the leading block-relation marker character (<, =, ...).
		Name:   tokens[1][1:],
		Status: Status(tokens[0]),
	}
	rec.addAttribute("blocked_package", []string{strings.TrimSuffix(tokens[len(tokens)-1], ")")})

	return rec, nil
}

// parseUninstall builds a record from an uninstall line, e.g.
//
//	[uninstall     ] perl-core/Compress-Raw-Zlib-2.202.0::gentoo
func parseUninstall(line string, tokens []string) (*PackageRecord, error) {
	if len(tokens) < 2 {
		return nil, &MalformedLineError{Line: line, Reason: "uninstall line has no package token"}
	}

	parts := strings.SplitN(tokens[1], "::", 2)
	if len(parts) != 2 {
		return nil, &MalformedLineError{Line: line, Reason: "package token lacks ::repo suffix"}
	}

	rec := &PackageRecord{
		Kind:   KindUninstall,
		Name:   parts[0],
		Status: Status(tokens[0]),
		Repo:   parts[1],
	}
	rec.addAttribute("uninstalled_package", []string{parts[0]})

	return rec, nil
}

// splitName extracts the package name from a name-version string by
// classifying its hyphen-delimited parts: purely numeric parts, parts
// containing '.' or ':', and two-character r<digit> revision parts
// belong to the version; everything else joins the name.
//
// The heuristic is inherently ambiguous for names with numeric
// components. It mirrors how emerge prints atoms and is best-effort,
// not a guarantee.
func splitName(nameVersion string) string {
	var nameParts []string
	for _, part := range strings.Split(nameVersion, "-") {
		if part == "" || isVersionPart(part) {
			continue
		}
		nameParts = append(nameParts, part)
	}
	return strings.Join(nameParts, "-")
}

func isVersionPart(part string) bool {
	if isNumeric(part) {
		return true
	}
	if strings.ContainsAny(part, ".:") {
		return true
	}
	return len(part) == 2 && part[0] == 'r' && part[1] >= '0' && part[1] <= '9'
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
