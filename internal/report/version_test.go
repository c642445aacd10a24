package report

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		v1   string
		v2   string
		want int
	}{
		{"equal simple", "1.0", "1.0", 0},
		{"equal with revision", "1.0-r1", "1.0-r1", 0},
		{"major difference", "2.0", "1.0", 1},
		{"minor difference", "1.1", "1.0", 1},
		{"patch difference", "1.0.1", "1.0", 1},
		{"revision difference", "1.0-r2", "1.0-r1", 1},
		{"rc vs release", "1.0_rc1", "1.0", -1},
		{"beta vs rc", "1.0_beta1", "1.0_rc1", -1},
		{"alpha vs beta", "1.0_alpha", "1.0_beta1", -1},
		{"patch suffix", "1.0_p1", "1.0", 1},
		{"rc1 vs rc2", "1.0_rc1", "1.0_rc2", -1},
		{"beta with revision", "1.0_beta2-r1", "1.0_beta2", 1},
		{"different lengths", "1.0.0", "1.0", 0},
		{"complex comparison", "1.0_beta2-r3", "1.0_rc1", -1},
		{"date versions", "20230731", "20230121", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareVersions(tt.v1, tt.v2); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.v1, tt.v2, got, tt.want)
			}
		})
	}
}

// genVersion generates valid Gentoo version strings.
func genVersion() gopter.Gen {
	versions := []interface{}{
		"1", "2", "10", "99",
		"1.0", "1.1", "2.0", "10.5",
		"1.0.1", "1.2.3", "10.20.30",
		"1.0_rc1", "1.0_rc2", "2.0_rc1",
		"1.0_beta1", "1.0_beta2", "1.0_alpha",
		"1.0_p1", "1.0-r1", "1.0-r2",
		"1.0_rc1-r1", "1.0_beta2-r3",
		"20230121", "20230731",
	}
	return gen.OneConstOf(versions...)
}

func TestPropertyVersionComparisonConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("antisymmetry: CompareVersions(v1, v2) == -CompareVersions(v2, v1)", prop.ForAll(
		func(v1, v2 string) bool {
			return CompareVersions(v1, v2) == -CompareVersions(v2, v1)
		},
		genVersion(),
		genVersion(),
	))

	properties.Property("reflexivity: CompareVersions(v, v) == 0", prop.ForAll(
		func(v string) bool {
			return CompareVersions(v, v) == 0
		},
		genVersion(),
	))

	properties.TestingRun(t)
}
