package guidelinematcher

import (
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	t.Run("priority descending", func(t *testing.T) {
		matches := []Match{
			{RuleID: "a", FlagText: "low", Priority: 10},
			{RuleID: "b", FlagText: "high", Priority: 90},
			{RuleID: "c", FlagText: "mid", Priority: 50},
		}
		Rank(matches)

		want := []string{"b", "c", "a"}
		for i, id := range want {
			if matches[i].RuleID != id {
				t.Errorf("matches[%d].RuleID = %q; want %q", i, matches[i].RuleID, id)
			}
		}
	})

	t.Run("ties break by flag text case-insensitive", func(t *testing.T) {
		matches := []Match{
			{RuleID: "a", FlagText: "zebra", Priority: 50},
			{RuleID: "b", FlagText: "Apple", Priority: 50},
			{RuleID: "c", FlagText: "mango", Priority: 50},
		}
		Rank(matches)

		want := []string{"b", "c", "a"}
		for i, id := range want {
			if matches[i].RuleID != id {
				t.Errorf("matches[%d].RuleID = %q; want %q", i, matches[i].RuleID, id)
			}
		}
	})

	t.Run("full ties keep document order", func(t *testing.T) {
		matches := []Match{
			{RuleID: "first", FlagText: "same", Priority: 50},
			{RuleID: "second", FlagText: "SAME", Priority: 50},
		}
		Rank(matches)

		if matches[0].RuleID != "first" || matches[1].RuleID != "second" {
			t.Errorf("stable sort violated: got %q, %q", matches[0].RuleID, matches[1].RuleID)
		}
	})

	t.Run("ranking is idempotent", func(t *testing.T) {
		matches := []Match{
			{RuleID: "a", FlagText: "x", Priority: 10},
			{RuleID: "b", FlagText: "y", Priority: 90},
		}
		Rank(matches)
		once := append([]Match(nil), matches...)
		Rank(matches)

		if !reflect.DeepEqual(matches, once) {
			t.Errorf("second Rank changed order: %v vs %v", matches, once)
		}
	})
}

func TestRanked(t *testing.T) {
	tests := []struct {
		name    string
		matches []Match
		want    bool
	}{
		{"empty", nil, true},
		{"single", []Match{{Priority: 1}}, true},
		{
			"ordered",
			[]Match{{FlagText: "a", Priority: 90}, {FlagText: "b", Priority: 90}, {FlagText: "a", Priority: 10}},
			true,
		},
		{
			"priority ascending",
			[]Match{{Priority: 10}, {Priority: 90}},
			false,
		},
		{
			"tie with descending flag",
			[]Match{{FlagText: "b", Priority: 50}, {FlagText: "A", Priority: 50}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ranked(tt.matches); got != tt.want {
				t.Errorf("Ranked() = %v; want %v", got, tt.want)
			}
		})
	}
}
