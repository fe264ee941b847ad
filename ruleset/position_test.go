package ruleset

import "testing"

func TestPositionAt(t *testing.T) {
	data := []byte("{\n  \"rules\": [\n    1\n  ]\n}")

	tests := []struct {
		name     string
		offset   int64
		wantLine int
		wantCol  int
	}{
		{"start", 0, 1, 1},
		{"first char consumed", 1, 1, 2},
		{"start of second line", 2, 2, 1},
		{"within second line", 4, 2, 3},
		{"start of third line", 15, 3, 1},
		{"end of input", int64(len(data)), 5, 2},
		{"negative clamps to start", -3, 1, 1},
		{"past end clamps to final position", 9999, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := PositionAt(data, tt.offset)
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("PositionAt(%d) = (%d, %d); want (%d, %d)",
					tt.offset, line, col, tt.wantLine, tt.wantCol)
			}
		})
	}

	t.Run("multibyte input counts bytes", func(t *testing.T) {
		// 'é' is two bytes; columns are byte positions, which is what text
		// editors showing byte columns expect.
		line, col := PositionAt([]byte("é:x"), 3)
		if line != 1 || col != 4 {
			t.Errorf("PositionAt = (%d, %d); want (1, 4)", line, col)
		}
	})
}
