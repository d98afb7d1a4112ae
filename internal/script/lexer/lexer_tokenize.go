package lexer

import (
	"errors"
	"unicode/utf8"
)

// tokenizeSource tokenizes a whole source file.
func tokenizeSource(data []byte) (*StreamToken, []Error) {
	tokenHandler := createTokenizer()

	regIgnore := compiledPatterns.whitespace
	regComment := compiledPatterns.comment
	patternTokens := compiledPatterns.tokenPatterns

	var loc []int
	var found bool
	var currentLine, currentColumn int

	for len(data) > 0 {
		// Ignore White Space
		loc = regIgnore.FindIndex(data)
		if loc != nil {
			position := ConvertSingleIndexToTextEditorPosition(data, loc[1])
			if position.Line != 0 {
				currentColumn = 0
			}

			currentLine += position.Line
			currentColumn += position.Character
			data = data[loc[1]:]

			continue
		}

		// Line comments never reach the parser
		loc = regComment.FindIndex(data)
		if loc != nil {
			currentColumn += loc[1]
			data = data[loc[1]:]

			continue
		}

		found = false

		// Match a pattern to a token
		for _, pattern := range patternTokens {
			loc = pattern.Regex.FindIndex(data)
			if loc == nil {
				continue
			}

			start := Position{Line: currentLine, Character: currentColumn}
			pos := Range{Start: start, End: start.Offset(loc[1])}
			currentColumn += loc[1]

			id, detail := classify(pattern.ID, data[:loc[1]])
			text := trimSuperflousCharacter(data[:loc[1]], id)
			tokenHandler.appendToken(id, detail, pos, text)

			found = true
			data = data[loc[1]:]

			break
		}

		if found {
			continue
		}

		// If no matching token found, add to error list
		var err error

		loc = compiledPatterns.unterminatedString.FindIndex(data)
		if loc != nil {
			err = errors.New("unterminated string literal")
		} else {
			_, size := utf8.DecodeRune(data)
			loc = []int{0, size}
			err = errors.New("character not recognized")
		}

		start := Position{Line: currentLine, Character: currentColumn}
		pos := Range{Start: start, End: start.Offset(loc[1])}
		currentColumn += loc[1]

		tokenHandler.appendToken(NotFound, DetailNone, pos, data[:loc[1]])
		tokenHandler.appendError(err, tokenHandler.LastToken)

		data = data[loc[1]:]
	}

	stream := &StreamToken{
		Tokens: tokenHandler.Tokens,
	}

	return stream, tokenHandler.Errs
}
