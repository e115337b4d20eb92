package main

import "testing"

func TestBuildAnalyzers(t *testing.T) {
	analyzers := buildAnalyzers()

	if len(analyzers) == 0 {
		t.Fatal("no analyzers configured")
	}

	seen := map[string]bool{}
	for _, a := range analyzers {
		if a == nil || a.Name == "" {
			t.Fatal("nil or unnamed analyzer in set")
		}
		if seen[a.Name] {
			t.Fatalf("analyzer %q registered twice", a.Name)
		}
		seen[a.Name] = true
	}

	for _, want := range []string{"printf", "nilerr", "forcetypeassert", "osexit", "ST1000"} {
		if !seen[want] {
			t.Fatalf("analyzer %q missing from set", want)
		}
	}

	var sa int
	for name := range seen {
		if len(name) > 2 && name[:2] == "SA" {
			sa++
		}
	}
	if sa == 0 {
		t.Fatal("no staticcheck SA analyzers in set")
	}
}
