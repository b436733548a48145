package datefmt

import "testing"

// TestStrptimeToLayout covers the supported verb set and error cases.
func TestStrptimeToLayout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tpl     string
		want    string
		wantErr bool
	}{
		{tpl: "%Y-%m-%d", want: "2006-1-2"},
		{tpl: "%Y/%m/%d", want: "2006/1/2"},
		{tpl: "%Y%m%d", want: "200612"},
		{tpl: "%Y-%m-%d %H:%M:%S", want: "2006-1-2 15:4:5"},
		{tpl: "%Y年%m月%d日", want: "2006年1月2日"},
		{tpl: "100%%", want: "100%"},
		{tpl: "%Y-%q", wantErr: true},
		{tpl: "%Y-%m-%", wantErr: true},
	}
	for _, tc := range cases {
		got, err := strptimeToLayout(tc.tpl)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("strptimeToLayout(%q): expected error, got %q", tc.tpl, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("strptimeToLayout(%q): %v", tc.tpl, err)
		}
		if got != tc.want {
			t.Fatalf("strptimeToLayout(%q) = %q, want %q", tc.tpl, got, tc.want)
		}
	}
}

// TestTemplateHasTime verifies detection of time-of-day verbs.
func TestTemplateHasTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tpl  string
		want bool
	}{
		{"%Y-%m-%d", false},
		{"%Y-%m-%d %H:%M:%S", true},
		{"%H", true},
		{"%Y年%m月", false},
		{"100%%M", false}, // %% consumes the percent; M is a literal
	}
	for _, tc := range cases {
		if got := templateHasTime(tc.tpl); got != tc.want {
			t.Fatalf("templateHasTime(%q) = %v, want %v", tc.tpl, got, tc.want)
		}
	}
}

// TestFormatComponents checks zero-padded rendering, including the phantom
// leap day that time.Time cannot hold.
func TestFormatComponents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tpl  string
		c    Components
		want string
	}{
		{"%Y-%m-%d", Components{Year: 2023, Month: 7, Day: 11}, "2023-07-11"},
		{"%Y-%m-%d %H:%M:%S", Components{Year: 2023, Month: 7, Day: 11, Hour: 8, Minute: 3, Second: 9}, "2023-07-11 08:03:09"},
		{"%Y-%m-%d %H:%M:%S", Components{Year: 2024, Month: 1, Day: 2}, "2024-01-02 00:00:00"},
		{"%Y-%m-%d", Components{Year: 1900, Month: 2, Day: 29}, "1900-02-29"},
		{"%Y/%m/%d", Components{Year: 815, Month: 3, Day: 4}, "0815/03/04"},
	}
	for _, tc := range cases {
		if got := FormatComponents(tc.tpl, tc.c); got != tc.want {
			t.Fatalf("FormatComponents(%q, %+v) = %q, want %q", tc.tpl, tc.c, got, tc.want)
		}
	}
}
