package misc

import (
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name string
		val  string
		def  string
		want string
	}{
		{"value present", "bar", "zzz", "bar"},
		{"value empty falls back", "", "defv", "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("X_MISC_GETENV", tt.val)
			if got := Getenv("X_MISC_GETENV", tt.def); got != tt.want {
				t.Fatalf("Getenv=%q want %q", got, tt.want)
			}
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name string
		val  string
		def  time.Duration
		want time.Duration
	}{
		{"unset uses default", "", 5 * time.Second, 5 * time.Second},
		{"bare seconds", "7", 0, 7 * time.Second},
		{"duration string", "1500ms", 0, 1500 * time.Millisecond},
		{"zero collapses", "0", 9 * time.Second, 0},
		{"negative collapses", "-3", 9 * time.Second, 0},
		{"garbage uses default", "soon", 4 * time.Second, 4 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("X_MISC_DUR", tt.val)
			if got := GetDuration("X_MISC_DUR", tt.def); got != tt.want {
				t.Fatalf("GetDuration=%v want %v", got, tt.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"TRUE", false, true},
		{"no", true, false},
		{"0", true, false},
		{"", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("X_MISC_BOOL", tt.val)
			if got := GetBool("X_MISC_BOOL", tt.def); got != tt.want {
				t.Fatalf("GetBool(%q, %v)=%v want %v", tt.val, tt.def, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" env:prod , host:web1 ", []string{"env:prod", "host:web1"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := SplitList(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("SplitList(%q)=%v want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("SplitList(%q)[%d]=%q want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGetStrings(t *testing.T) {
	t.Setenv("X_MISC_LIST", "k:v, x:y")
	got := GetStrings("X_MISC_LIST", nil)
	if len(got) != 2 || got[0] != "k:v" || got[1] != "x:y" {
		t.Fatalf("GetStrings=%v", got)
	}

	t.Setenv("X_MISC_LIST", "")
	def := []string{"d:1"}
	got = GetStrings("X_MISC_LIST", def)
	if len(got) != 1 || got[0] != "d:1" {
		t.Fatalf("GetStrings default=%v", got)
	}
}
