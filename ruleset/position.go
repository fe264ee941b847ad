package ruleset

// PositionAt converts a byte offset into a 1-based line and column by
// scanning the raw UTF-8 bytes up to the offset, counting '\n' as line
// breaks. It is a pure function, independent of whichever parser produced
// the offset. Offsets beyond the input clamp to the final position.
func PositionAt(data []byte, offset int64) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}

	line, column = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
