package report

import (
	"testing"

	"github.com/DevenBL/gentoo-update/internal/parser"
)

// splitLog is a helper building Sections from raw marked lines.
func splitLog(t *testing.T, lines []string) *parser.Sections {
	t.Helper()
	return parser.Split(lines)
}

func TestGenerate_PretendSection(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantRan     bool
		wantSuccess bool
	}{
		{
			name: "pretend successful",
			lines: []string{
				"x ::: {{ PRETEND EMERGE }}",
				"x ::: emerge pretend was successful, updating...",
			},
			wantRan:     true,
			wantSuccess: true,
		},
		{
			name: "pretend failed",
			lines: []string{
				"x ::: {{ PRETEND EMERGE }}",
				"x ::: emerge: there are no ebuilds to satisfy dev-libs/nonexistent",
			},
			wantRan:     true,
			wantSuccess: false,
		},
		{
			name:    "no pretend section",
			lines:   []string{"x ::: plain line"},
			wantRan: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Generate(splitLog(t, tt.lines), nil)
			if r.PretendRan != tt.wantRan {
				t.Errorf("PretendRan = %v, want %v", r.PretendRan, tt.wantRan)
			}
			if r.PretendSuccess != tt.wantSuccess {
				t.Errorf("PretendSuccess = %v, want %v", r.PretendSuccess, tt.wantSuccess)
			}
		})
	}
}

func TestGenerate_UpdateSystemSection(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantMode    string
		wantSuccess bool
	}{
		{
			name: "world update successful",
			lines: []string{
				"x ::: {{ UPDATE SYSTEM }}",
				"x ::: update section start",
				"x ::: emerge @world --update --deep",
				"x ::: update was successful",
			},
			wantMode:    "@world",
			wantSuccess: true,
		},
		{
			name: "world update failed",
			lines: []string{
				"x ::: {{ UPDATE SYSTEM }}",
				"x ::: update section start",
				"x ::: emerge @world --update",
				"x ::: emerge exited with an error",
			},
			wantMode:    "@world",
			wantSuccess: false,
		},
		{
			name: "glsa update successful",
			lines: []string{
				"x ::: {{ UPDATE SYSTEM }}",
				"x ::: update section start",
				"x ::: glsa-check GLSA fixes",
				"x ::: glsa update was successful",
			},
			wantMode:    "GLSA",
			wantSuccess: true,
		},
		{
			name: "unknown update type",
			lines: []string{
				"x ::: {{ UPDATE SYSTEM }}",
				"x ::: update section start",
				"x ::: emerge @system --update",
				"x ::: update was successful",
			},
			wantMode:    "@system",
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Generate(splitLog(t, tt.lines), nil)
			if !r.UpdateRan {
				t.Fatal("UpdateRan = false, want true")
			}
			if r.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", r.Mode, tt.wantMode)
			}
			if r.UpdateSuccess != tt.wantSuccess {
				t.Errorf("UpdateSuccess = %v, want %v", r.UpdateSuccess, tt.wantSuccess)
			}
		})
	}
}

func TestGenerate_CollectsPackagesAndCounts(t *testing.T) {
	lines := []string{
		"x ::: {{ UPDATE SYSTEM }}",
		"x ::: update section start",
		"x ::: emerge @world",
		"x ::: [ ok ]",
		"x ::: [ebuild  N    ] app-misc/foo-1.0::gentoo",
		"x ::: [ebuild     U  ] sys-devel/gnuconfig-20230731::gentoo [20230121::gentoo] 72 KiB",
		"x ::: [ebuild  R    ] dev-libs/openssl-3.0.1-r1::gentoo",
		"x ::: [uninstall     ] perl-core/Compress-Raw-Zlib-2.202.0::gentoo",
		"x ::: [blocks b      ] <perl-core/Compress-Raw-Zlib-2.204.1_rc (foo is soft blocking virtual/x-1.0)",
		"x ::: update was successful",
	}

	r := Generate(splitLog(t, lines), nil)

	if len(r.Packages) != 5 {
		t.Fatalf("got %d records, want 5", len(r.Packages))
	}

	c := r.Count()
	if c.NewPackages != 1 || c.Updates != 1 || c.ReEmerges != 1 || c.Uninstalls != 1 || c.Blocks != 1 {
		t.Errorf("Count() = %+v", c)
	}
}

func TestGenerate_DetectsDowngrades(t *testing.T) {
	lines := []string{
		"x ::: {{ UPDATE SYSTEM }}",
		"x ::: update section start",
		"x ::: emerge @world",
		"x ::: [ebuild     U  ] app-misc/rollback-1.0::gentoo [2.0::gentoo]",
		"x ::: [ebuild     U  ] app-misc/forward-2.0::gentoo [1.0::gentoo]",
		"x ::: update was successful",
	}

	r := Generate(splitLog(t, lines), nil)

	if len(r.Downgraded) != 1 {
		t.Fatalf("got %d downgrades, want 1", len(r.Downgraded))
	}
	if r.Downgraded[0].Name != "app-misc/rollback" {
		t.Errorf("downgraded package = %q", r.Downgraded[0].Name)
	}
}

func TestGenerate_MatchesWatchlist(t *testing.T) {
	lines := []string{
		"x ::: {{ UPDATE SYSTEM }}",
		"x ::: update section start",
		"x ::: emerge @world",
		"x ::: [ebuild     U  ] sys-devel/gnuconfig-20230731::gentoo [20230121::gentoo]",
		"x ::: [ebuild  N    ] app-misc/foo-1.0::gentoo",
		"x ::: update was successful",
	}

	watchlist := &Watchlist{Packages: map[string]WatchConfig{
		"sys-devel/gnuconfig": {Notify: true},
	}}

	r := Generate(splitLog(t, lines), watchlist)

	if len(r.Watched) != 1 {
		t.Fatalf("got %d watched records, want 1", len(r.Watched))
	}
	if r.Watched[0].Name != "sys-devel/gnuconfig" {
		t.Errorf("watched package = %q", r.Watched[0].Name)
	}
}

func TestGenerate_SurfacesMalformedLines(t *testing.T) {
	lines := []string{
		"x ::: {{ UPDATE SYSTEM }}",
		"x ::: update section start",
		"x ::: emerge @world",
		"x ::: [ebuild     U  ] broken-token-without-repo",
		"x ::: update was successful",
	}

	r := Generate(splitLog(t, lines), nil)

	if len(r.Packages) != 0 {
		t.Errorf("got %d records, want 0", len(r.Packages))
	}
	if len(r.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(r.Errors))
	}
}
