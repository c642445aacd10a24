package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Release-cycle suffix ordering: _alpha < _beta < _pre < _rc < release < _p.
var suffixRank = map[string]int{
	"alpha": -4,
	"beta":  -3,
	"pre":   -2,
	"rc":    -1,
	"":      0,
	"p":     1,
}

var (
	versionSuffixRegex  = regexp.MustCompile(`_([a-z]+)(\d*)`)
	revisionSuffixRegex = regexp.MustCompile(`-r(\d+)$`)
)

// parsedVersion holds the comparable components of a Gentoo-style
// version string.
type parsedVersion struct {
	nums      []int
	suffix    string
	suffixNum int
	revision  int
}

func parseVersion(v string) parsedVersion {
	var p parsedVersion

	if m := revisionSuffixRegex.FindStringSubmatch(v); m != nil {
		p.revision, _ = strconv.Atoi(m[1])
		v = revisionSuffixRegex.ReplaceAllString(v, "")
	}

	if m := versionSuffixRegex.FindStringSubmatch(v); m != nil {
		p.suffix = m[1]
		if m[2] != "" {
			p.suffixNum, _ = strconv.Atoi(m[2])
		}
		v = versionSuffixRegex.ReplaceAllString(v, "")
	}

	for _, part := range strings.Split(v, ".") {
		// Letter tails like 1.0a compare on their numeric prefix.
		numStr := strings.TrimRight(part, "abcdefghijklmnopqrstuvwxyz")
		n, _ := strconv.Atoi(numStr)
		p.nums = append(p.nums, n)
	}

	return p
}

// CompareVersions orders two Gentoo-style version strings.
// It returns -1 when v1 < v2, 0 when equal, 1 when v1 > v2.
// Missing numeric components compare as zero, so "1.0" equals "1.0.0".
func CompareVersions(v1, v2 string) int {
	a, b := parseVersion(v1), parseVersion(v2)

	n := len(a.nums)
	if len(b.nums) > n {
		n = len(b.nums)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a.nums) {
			av = a.nums[i]
		}
		if i < len(b.nums) {
			bv = b.nums[i]
		}
		if av != bv {
			return sign(av - bv)
		}
	}

	if suffixRank[a.suffix] != suffixRank[b.suffix] {
		return sign(suffixRank[a.suffix] - suffixRank[b.suffix])
	}
	if a.suffixNum != b.suffixNum {
		return sign(a.suffixNum - b.suffixNum)
	}
	if a.revision != b.revision {
		return sign(a.revision - b.revision)
	}
	return 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
