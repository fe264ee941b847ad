package ruleset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const messyDocument = `{
	"rules": [
		{
			"when": {
				"any": [{"valueNumber": 1, "op": "lte", "key": "age_months"}],
				"all": [{"op": "gte", "key": "fever_c", "valueNumber": 38.0}]
			},
			"priority": 80,
			"flag": "Consider sepsis workup",
			"id": "R1",
			"note": "Neonatal fever is an emergency."
		}
	],
	"schemaVersion": "1"
}`

func TestFormat(t *testing.T) {
	doc, err := Load([]byte(messyDocument))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out, err := Format(doc)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	t.Run("alphabetical key order", func(t *testing.T) {
		text := string(out)
		for _, pair := range [][2]string{
			{`"rules"`, `"schemaVersion"`},
			{`"flag"`, `"id"`},
			{`"id"`, `"note"`},
			{`"note"`, `"priority"`},
			{`"priority"`, `"when"`},
			{`"all"`, `"any"`},
			{`"key"`, `"op"`},
			{`"op"`, `"valueNumber"`},
		} {
			first := strings.Index(text, pair[0])
			second := strings.Index(text, pair[1])
			if first < 0 || second < 0 {
				t.Fatalf("expected both %s and %s in output", pair[0], pair[1])
			}
			if first > second {
				t.Errorf("%s should appear before %s", pair[0], pair[1])
			}
		}
	})

	t.Run("ends with a newline", func(t *testing.T) {
		if !bytes.HasSuffix(out, []byte("\n")) {
			t.Error("canonical output must end with a newline")
		}
	})

	t.Run("numbers are unquoted", func(t *testing.T) {
		if strings.Contains(string(out), `"38"`) || strings.Contains(string(out), `"valueNumber": "`) {
			t.Errorf("numeric payloads must not be quoted:\n%s", out)
		}
	})

	t.Run("round trip preserves meaning", func(t *testing.T) {
		again, err := Load(out)
		if err != nil {
			t.Fatalf("Load(formatted) error = %v", err)
		}
		if len(again.Rules) != 1 || again.Rules[0].ID != "R1" {
			t.Fatalf("round-tripped document = %+v", again)
		}
		cond := again.Rules[0].When.All[0]
		if cond.Key != "fever_c" || cond.Op != OpGTE || !cond.ValueNumber.Equal(decimal.NewFromInt(38)) {
			t.Errorf("round-tripped condition = %+v", cond)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		again, err := Load(out)
		if err != nil {
			t.Fatalf("Load(formatted) error = %v", err)
		}
		out2, err := Format(again)
		if err != nil {
			t.Fatalf("second Format() error = %v", err)
		}
		if !bytes.Equal(out, out2) {
			t.Errorf("format is not idempotent:\nfirst:\n%s\nsecond:\n%s", out, out2)
		}
	})

	t.Run("empty groups are emitted explicitly", func(t *testing.T) {
		doc, err := Load([]byte(`{"rules": [{"id": "R2", "flag": "f", "priority": 1, "when": {}}]}`))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		out, err := Format(doc)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(string(out), `"all": []`) || !strings.Contains(string(out), `"any": []`) {
			t.Errorf("empty groups should be emitted:\n%s", out)
		}
	})
}
