package registry

import "testing"

func TestDefault(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	t.Run("catalog is non-empty", func(t *testing.T) {
		if r.Len() == 0 {
			t.Fatal("embedded catalog has no entries")
		}
	})

	t.Run("core keys are present", func(t *testing.T) {
		for _, key := range []string{
			"age_months",
			"fever_c",
			"dx",
			"sick.hpi.complaint.fever",
			"sick.pe.lungs.wheezing",
		} {
			if !r.Has(key) {
				t.Errorf("Has(%q) = false; want true", key)
			}
		}
	})

	t.Run("entries are sorted by key", func(t *testing.T) {
		entries := r.Entries()
		for i := 1; i < len(entries); i++ {
			if entries[i-1].Key >= entries[i].Key {
				t.Errorf("entries out of order at %d: %q >= %q", i, entries[i-1].Key, entries[i].Key)
			}
		}
	})

	t.Run("every entry has a category", func(t *testing.T) {
		for _, e := range r.Entries() {
			if e.Category == "" {
				t.Errorf("entry %q has no category", e.Key)
			}
		}
	})
}

func TestFromJSON(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		r, err := FromJSON([]byte(`[
			{"key": "fever_c", "category": "vitals", "example": "38.5"},
			{"key": "dx", "category": "diagnosis", "example": "sct:233604007"}
		]`))
		if err != nil {
			t.Fatalf("FromJSON() error = %v", err)
		}
		if r.Len() != 2 {
			t.Errorf("Len() = %d; want 2", r.Len())
		}
		e, ok := r.Get("dx")
		if !ok || e.Category != "diagnosis" {
			t.Errorf("Get(dx) = %+v, %v", e, ok)
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		if _, err := FromJSON([]byte(`[{"key": "", "category": "vitals"}]`)); err == nil {
			t.Error("expected error for empty key")
		}
	})

	t.Run("duplicate key rejected", func(t *testing.T) {
		if _, err := FromJSON([]byte(`[{"key": "dx"}, {"key": "dx"}]`)); err == nil {
			t.Error("expected error for duplicate key")
		}
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		if _, err := FromJSON([]byte(`{`)); err == nil {
			t.Error("expected error for malformed catalog")
		}
	})
}

func TestSearch(t *testing.T) {
	r, err := FromJSON([]byte(`[
		{"key": "fever_c", "category": "vitals"},
		{"key": "sick.hpi.complaint.fever", "category": "hpi"},
		{"key": "sick.hpi.complaint.cough", "category": "hpi"},
		{"key": "age_months", "category": "demographics"}
	]`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	t.Run("prefix hits order before substring hits", func(t *testing.T) {
		got := r.Search("fever", 10)
		if len(got) != 2 {
			t.Fatalf("got %d results; want 2", len(got))
		}
		if got[0].Key != "fever_c" || got[1].Key != "sick.hpi.complaint.fever" {
			t.Errorf("got %v; want fever_c first", got)
		}
	})

	t.Run("case-insensitive", func(t *testing.T) {
		if got := r.Search("FEVER", 10); len(got) != 2 {
			t.Errorf("got %d results; want 2", len(got))
		}
	})

	t.Run("limit truncates", func(t *testing.T) {
		if got := r.Search("fever", 1); len(got) != 1 {
			t.Errorf("got %d results; want 1", len(got))
		}
	})

	t.Run("empty query yields nothing", func(t *testing.T) {
		if got := r.Search("  ", 10); got != nil {
			t.Errorf("got %v; want nil", got)
		}
	})

	t.Run("no hits", func(t *testing.T) {
		if got := r.Search("xyzzy", 10); len(got) != 0 {
			t.Errorf("got %v; want empty", got)
		}
	})
}

func TestCategories(t *testing.T) {
	r, err := FromJSON([]byte(`[
		{"key": "a", "category": "vitals"},
		{"key": "b", "category": "hpi"},
		{"key": "c", "category": "vitals"}
	]`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	got := r.Categories()
	want := []string{"hpi", "vitals"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}
