// Package parser compiles native and ICU date format patterns into
// [ast.Pattern] values.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theory/datefmt/pattern/ast"
	"golang.org/x/exp/maps"
)

// ErrPattern wraps pattern compilation errors.
var ErrPattern = errors.New("pattern")

// ParseNative compiles src, a pattern of PHP date tokens like "Y-m-d H:i:s",
// into an [ast.Pattern]. The "php:" prefix must already have been removed.
// Characters that are not tokens are literals; a backslash escapes the
// character that follows it.
func ParseNative(src string) (*ast.Pattern, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty native pattern", ErrPattern)
	}

	var (
		tokens  []ast.Token
		literal strings.Builder
		escape  bool
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, ast.Token{Field: ast.Literal, Text: literal.String()})
			literal.Reset()
		}
	}

	for _, r := range src {
		if escape {
			literal.WriteRune(r)
			escape = false
			continue
		}

		if r == '\\' {
			escape = true
			continue
		}

		tok, ok := nativeTokens[r]
		if !ok {
			literal.WriteRune(r)
			continue
		}

		flush()
		tok.Text = string(r)
		tokens = append(tokens, tok)
	}

	if escape {
		return nil, fmt.Errorf(
			"%w: trailing backslash in native pattern %q",
			ErrPattern, src,
		)
	}

	flush()
	return ast.New(ast.Native, src, tokens), nil
}

// ParseICU compiles src, an ICU pattern like "yyyy-MM-dd HH:mm:ss", into an
// [ast.Pattern]. Runs of the same ASCII letter form a field; text between
// single quotes is literal and two single quotes is a literal quote. Letters
// without a supported meaning are an error, as ICU reserves all of them.
func ParseICU(src string) (*ast.Pattern, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty ICU pattern", ErrPattern)
	}

	var (
		tokens  []ast.Token
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, ast.Token{Field: ast.Literal, Text: literal.String()})
			literal.Reset()
		}
	}

	runes := []rune(src)
	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case r == '\'':
			// '' is a quote either inside or outside quoted text.
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i += 2
				continue
			}

			end := i + 1
			for ; end < len(runes); end++ {
				if runes[end] != '\'' {
					literal.WriteRune(runes[end])
					continue
				}
				if end+1 < len(runes) && runes[end+1] == '\'' {
					literal.WriteRune('\'')
					end++
					continue
				}
				break
			}
			if end >= len(runes) {
				return nil, fmt.Errorf(
					"%w: unterminated quote in ICU pattern %q",
					ErrPattern, src,
				)
			}
			i = end + 1

		case isPatternLetter(r):
			count := 1
			for i+count < len(runes) && runes[i+count] == r {
				count++
			}

			tok, err := icuToken(r, count)
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, src)
			}

			flush()
			tok.Text = string(runes[i : i+count])
			tokens = append(tokens, tok)
			i += count

		default:
			literal.WriteRune(r)
			i++
		}
	}

	flush()
	return ast.New(ast.ICU, src, tokens), nil
}

// isPatternLetter returns true for the ASCII letters ICU reserves as pattern
// fields.
func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// icuToken returns the token for count repetitions of the ICU pattern
// letter r.
func icuToken(r rune, count int) (ast.Token, error) {
	build, ok := icuFields[r]
	if !ok {
		return ast.Token{}, fmt.Errorf(
			"%w: unsupported pattern letter %q (supported: %v)",
			ErrPattern, r, supportedLetters(),
		)
	}

	tok, ok := build(count)
	if !ok {
		return ast.Token{}, fmt.Errorf(
			"%w: unsupported width %d for pattern letter %q",
			ErrPattern, count, r,
		)
	}
	return tok, nil
}

// supportedLetters returns the sorted list of supported ICU pattern letters.
func supportedLetters() string {
	keys := maps.Keys(icuFields)
	slices.Sort(keys)
	return string(keys)
}

//nolint:gochecknoglobals
var nativeTokens = map[rune]ast.Token{
	'Y': {Field: ast.Year, Min: 1, Max: 4, Pad: 4},
	'y': {Field: ast.YearShort, Min: 2, Max: 2, Pad: 2},
	'm': {Field: ast.Month, Min: 1, Max: 2, Pad: 2},
	'n': {Field: ast.Month, Min: 1, Max: 2, Pad: 1},
	'M': {Field: ast.MonthName, Style: ast.StyleAbbreviated},
	'F': {Field: ast.MonthName, Style: ast.StyleWide},
	'd': {Field: ast.Day, Min: 1, Max: 2, Pad: 2},
	'j': {Field: ast.Day, Min: 1, Max: 2, Pad: 1},
	'D': {Field: ast.WeekdayName, Style: ast.StyleAbbreviated},
	'l': {Field: ast.WeekdayName, Style: ast.StyleWide},
	'H': {Field: ast.Hour, Min: 1, Max: 2, Pad: 2},
	'G': {Field: ast.Hour, Min: 1, Max: 2, Pad: 1},
	'h': {Field: ast.Hour12, Min: 1, Max: 2, Pad: 2},
	'g': {Field: ast.Hour12, Min: 1, Max: 2, Pad: 1},
	'A': {Field: ast.Meridiem, Style: ast.StyleAbbreviated},
	'a': {Field: ast.Meridiem, Style: ast.StyleAbbreviated},
	'i': {Field: ast.Minute, Min: 2, Max: 2, Pad: 2},
	's': {Field: ast.Second, Min: 2, Max: 2, Pad: 2},
	'u': {Field: ast.Fraction, Min: 1, Max: 6, Pad: 6},
	'U': {Field: ast.Unix, Min: 1},
	'P': {Field: ast.Offset, Style: ast.StyleOffsetExtended, Zulu: true},
	'O': {Field: ast.Offset, Style: ast.StyleOffsetBasic, Zulu: true},
	'!': {Field: ast.Reset},
	'|': {Field: ast.ResetUnparsed},
	'?': {Field: ast.AnyChar},
}

// icuFields maps ICU pattern letters to functions that build the token for a
// run of count letters, returning false if the count is not supported.
//
//nolint:gochecknoglobals
var icuFields = map[rune]func(count int) (ast.Token, bool){
	'y': func(count int) (ast.Token, bool) {
		if count == 2 {
			return ast.Token{Field: ast.YearShort, Min: 1, Pad: 2}, true
		}
		return ast.Token{Field: ast.Year, Min: 1, Pad: count}, true
	},
	'M': monthToken(false),
	'L': monthToken(true),
	'd': numericToken(ast.Day, 2),
	'E': func(count int) (ast.Token, bool) {
		return ast.Token{Field: ast.WeekdayName, Style: nameStyle(count)}, count <= 5
	},
	'c': func(count int) (ast.Token, bool) {
		return ast.Token{Field: ast.WeekdayName, Style: nameStyle(count), Standalone: true}, count >= 3 && count <= 5
	},
	'a': func(count int) (ast.Token, bool) {
		return ast.Token{Field: ast.Meridiem, Style: ast.StyleAbbreviated}, count <= 3
	},
	'h': numericToken(ast.Hour12, 2),
	'H': numericToken(ast.Hour, 2),
	'k': numericToken(ast.Hour24, 2),
	'K': numericToken(ast.Hour11, 2),
	'm': numericToken(ast.Minute, 2),
	's': numericToken(ast.Second, 2),
	'S': func(count int) (ast.Token, bool) {
		const maxFraction = 9
		return ast.Token{Field: ast.Fraction, Min: 1, Pad: count}, count <= maxFraction
	},
	'X': offsetToken(true),
	'x': offsetToken(false),
	'Z': func(count int) (ast.Token, bool) {
		switch count {
		case 1, 2, 3:
			return ast.Token{Field: ast.Offset, Style: ast.StyleOffsetBasic}, true
		case 5:
			return ast.Token{Field: ast.Offset, Style: ast.StyleOffsetExtended, Zulu: true}, true
		default:
			return ast.Token{}, false
		}
	},
}

// numericToken returns a builder for a numeric field of at most maxCount
// letters.
func numericToken(field ast.Field, maxCount int) func(int) (ast.Token, bool) {
	return func(count int) (ast.Token, bool) {
		return ast.Token{Field: field, Min: 1, Pad: count}, count <= maxCount
	}
}

// monthToken returns a builder for M and L, numeric for one or two letters
// and names for three or more.
func monthToken(standalone bool) func(int) (ast.Token, bool) {
	return func(count int) (ast.Token, bool) {
		if count <= 2 {
			return ast.Token{Field: ast.Month, Min: 1, Pad: count}, true
		}
		return ast.Token{
			Field:      ast.MonthName,
			Style:      nameStyle(count),
			Standalone: standalone,
		}, count <= 5
	}
}

// offsetToken returns a builder for the ISO 8601 offset letters X and x.
func offsetToken(zulu bool) func(int) (ast.Token, bool) {
	return func(count int) (ast.Token, bool) {
		tok := ast.Token{Field: ast.Offset, Zulu: zulu}
		switch count {
		case 1:
			tok.Style = ast.StyleOffsetHours
		case 2, 4:
			tok.Style = ast.StyleOffsetBasic
		case 3, 5:
			tok.Style = ast.StyleOffsetExtended
		default:
			return ast.Token{}, false
		}
		return tok, true
	}
}

// nameStyle maps the letter count of a name field to its style.
func nameStyle(count int) ast.Style {
	const (
		wide   = 4
		narrow = 5
	)
	switch count {
	case wide:
		return ast.StyleWide
	case narrow:
		return ast.StyleNarrow
	default:
		return ast.StyleAbbreviated
	}
}
