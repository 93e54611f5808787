package repair

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// A well-formed double-quoted string literal, escapes included.
	quotedString = regexp.MustCompile(`"[^"\\]*(?:\\.[^"\\]*)*"`)

	// A trailing comma immediately preceding a closing brace/bracket.
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)

	// A closing quote/brace immediately followed by an opening brace/bracket
	// with no comma in between.
	missingComma = regexp.MustCompile(`([}"])\s*([{\[])`)

	// A bare alphanumeric/underscore object key before a colon.
	bareKey = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)

	colonSpace    = regexp.MustCompile(`\s*:\s*`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Repair applies the pipeline to a candidate JSON string. It always returns
// some string; empty or whitespace-only input yields "{}".
//
// Stages, in order:
//  1. protect well-formed double-quoted literals behind placeholders
//  2. convert every remaining single quote to a double quote
//  3. restore the protected literals
//  4. remove trailing commas before } or ]
//  5. insert a missing comma between adjacent value boundaries
//  6. quote bare object keys
//  7. drop whitespace around colons
//  8. strip one redundant outer pair of double quotes
//  9. extract the first { through the last } (no braces yields "{}")
//  10. collapse whitespace runs to single spaces
func Repair(candidate string) string {
	if strings.TrimSpace(candidate) == "" {
		return "{}"
	}

	// Stages 1-3. Protection must precede the quote conversion so that
	// apostrophes inside valid string literals survive untouched.
	s := normalizeQuotes(candidate)

	// Stage 4.
	s = trailingComma.ReplaceAllString(s, "${1}")

	// Stage 5.
	s = missingComma.ReplaceAllString(s, "${1},${2}")

	// Stage 6.
	s = bareKey.ReplaceAllString(s, `${1}"${2}"${3}`)

	// Stage 7.
	s = colonSpace.ReplaceAllString(s, ":")

	// Stage 8.
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}

	// Stage 9.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "{}"
	}
	s = s[start : end+1]

	// Stage 10.
	return whitespaceRun.ReplaceAllString(s, " ")
}

// normalizeQuotes converts single quotes to double quotes everywhere outside
// existing well-formed double-quoted literals.
func normalizeQuotes(s string) string {
	var protected []string
	s = quotedString.ReplaceAllStringFunc(s, func(match string) string {
		protected = append(protected, match)
		return placeholder(len(protected) - 1)
	})

	s = strings.ReplaceAll(s, "'", `"`)

	for i, original := range protected {
		s = strings.Replace(s, placeholder(i), original, 1)
	}
	return s
}

// placeholder returns a token that cannot collide with literal text: a raw
// NUL byte is never valid inside a JSON string, and the trailing delimiter
// keeps index 1 from matching a prefix of index 10.
func placeholder(i int) string {
	return fmt.Sprintf("\x00q%d\x00", i)
}
