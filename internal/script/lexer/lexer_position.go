package lexer

// ConvertSingleIndexToTextEditorPosition converts a byte index to a text editor position.
func ConvertSingleIndexToTextEditorPosition(buffer []byte, charIndex int) Position {
	var line, col int

	for i := range buffer {
		if i == charIndex {
			break
		}

		if buffer[i] == byte('\n') {
			line++
			col = 0
		} else {
			col++
		}
	}

	pos := Position{Line: line, Character: col}

	return pos
}

