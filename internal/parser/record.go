package parser

import "fmt"

// Kind discriminates the variant of a package action line.
type Kind string

const (
	KindEbuild    Kind = "ebuild"
	KindBlocks    Kind = "blocks"
	KindUninstall Kind = "uninstall"
	KindUnknown   Kind = "unknown"
)

// Status classifies what happened to a package during the update.
// For ebuild records it is one of the constants below; blocks and
// uninstall records carry their raw bracketed status token instead.
type Status string

const (
	StatusNewPackage Status = "NewPackage"
	StatusReEmerge   Status = "ReEmerge"
	StatusUpdate     Status = "Update"
	StatusUndefined  Status = "Undefined"
)

// PackageRecord is one parsed package action. The Kind field is the
// variant tag; NewVersion, OldVersion and Repo are only set for the
// kinds that carry them, so a blocks or uninstall record can never hold
// a version.
type PackageRecord struct {
	Kind       Kind
	Name       string // category/package, never empty
	NewVersion string // ebuild only
	OldVersion string // ebuild only, when the line shows a previous version
	Status     Status
	Repo       string // ebuild and uninstall
	Attributes map[string][]string
}

// addAttribute stores an attribute value list under key, replacing any
// earlier value for the same key.
func (r *PackageRecord) addAttribute(key string, values []string) {
	if r.Attributes == nil {
		r.Attributes = make(map[string][]string)
	}
	r.Attributes[key] = values
}

// MalformedLineError reports a package line with fewer or differently
// shaped tokens than its variant's builder expects.
type MalformedLineError struct {
	Line   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed package line %q: %s", e.Line, e.Reason)
}
