package cleaner

import (
	"testing"

	"datarefinery/internal/config"
)

// TestParsePolicyRoundTrip maps every configuration spelling both ways.
func TestParsePolicyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{config.PolicyKeepOriginal, config.PolicySetNull, config.PolicyDropRow} {
		p, err := ParsePolicy(s)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", s, err)
		}
		if p.String() != s {
			t.Fatalf("Policy(%q).String() = %q", s, p.String())
		}
	}
	if _, err := ParsePolicy("explode"); err == nil {
		t.Fatal("ParsePolicy(explode): expected error")
	}
}

// TestParseOutputMode covers both modes and the error case.
func TestParseOutputMode(t *testing.T) {
	t.Parallel()

	if m, err := ParseOutputMode(config.OutputModeReplace); err != nil || m != Replace {
		t.Fatalf("ParseOutputMode(replace) = %v, %v", m, err)
	}
	if m, err := ParseOutputMode(config.OutputModeAddColumn); err != nil || m != AddColumn {
		t.Fatalf("ParseOutputMode(add_column) = %v, %v", m, err)
	}
	if _, err := ParseOutputMode("sideways"); err == nil {
		t.Fatal("ParseOutputMode(sideways): expected error")
	}
}
