package datefmt

import "testing"

// TestNormalizeColumnName checks byte-order-mark removal, trimming, and case
// folding. Ideographic names must pass through unchanged.
func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"\ufeffDate", "date"},
		{"  Created_At  ", "created_at"},
		{"HIRE DATE", "hire date"},
		{" 创建时间", "创建时间"},
		{"\ufeff创建时间 ", "创建时间"},
		{"Straße", "strasse"},
	}
	for _, tc := range cases {
		if got := NormalizeColumnName(tc.in); got != tc.want {
			t.Fatalf("NormalizeColumnName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestResolveColumn covers candidate ordering, alias matching, and misses.
func TestResolveColumn(t *testing.T) {
	t.Parallel()

	columns := []string{"id", "\ufeff创建时间", "Hire_Date", "notes"}

	cases := []struct {
		name   string
		spec   FieldSpec
		want   int
		wantOK bool
	}{
		{
			name:   "canonical name wins over aliases",
			spec:   FieldSpec{Name: "创建时间", Aliases: []string{"hire_date"}},
			want:   1,
			wantOK: true,
		},
		{
			name:   "alias match with case folding",
			spec:   FieldSpec{Name: "入职日期", Aliases: []string{"hire_date"}},
			want:   2,
			wantOK: true,
		},
		{
			name:   "aliases tried in declared order",
			spec:   FieldSpec{Name: "absent", Aliases: []string{"notes", "hire_date"}},
			want:   3,
			wantOK: true,
		},
		{
			name:   "no candidate present",
			spec:   FieldSpec{Name: "出生日期", Aliases: []string{"birth_date"}},
			wantOK: false,
		},
	}
	for _, tc := range cases {
		got, ok := ResolveColumn(columns, tc.spec)
		if ok != tc.wantOK {
			t.Fatalf("%s: ok = %v, want %v", tc.name, ok, tc.wantOK)
		}
		if ok && got != tc.want {
			t.Fatalf("%s: index = %d, want %d", tc.name, got, tc.want)
		}
	}
}

// TestResolveColumnDuplicateNormalizedNames pins first-occurrence-wins when
// two raw headers normalize to the same key.
func TestResolveColumnDuplicateNormalizedNames(t *testing.T) {
	t.Parallel()

	columns := []string{"Date", " date ", "DATE"}
	idx, ok := ResolveColumn(columns, FieldSpec{Name: "date"})
	if !ok {
		t.Fatal("ResolveColumn: no match, want match")
	}
	if idx != 0 {
		t.Fatalf("index = %d, want 0 (first occurrence)", idx)
	}
}
