package repl

import (
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/sapling/vm"
)

// keywords are the reserved words of spec.md §6.4, offered as completion
// candidates alongside whatever names are currently bound in the
// environment.
var keywords = []string{
	"if", "else", "while", "func", "import", "return", "struct", "enum",
	"const", "new", "repeat", "until", "from", "in",
}

// isWordBoundary reports whether r delimits an identifier, mirroring the
// teacher's cli/cmd/repl/completer.go boundary set narrowed to Sapling's
// own operator/punctuation set (spec.md §6.4).
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', ':':
		return true
	}

	return false
}

// wordBounds returns the identifier ending at cursor within line, along
// with its start offset.
func wordBounds(line string, cursor int) (word string, start int) {
	if cursor > len(line) {
		cursor = len(line)
	}

	start = cursor
	for start > 0 && !isWordBoundary(rune(line[start-1])) {
		start--
	}

	return line[start:cursor], start
}

// complete returns fuzzy matches for the word ending at cursor against
// every name bound in env plus Sapling's keywords (SPEC_FULL.md §B,
// github.com/sahilm/fuzzy — the same library the teacher's REPL
// completer uses).
func complete(env vm.Env, line string, cursor int) (matches []string, start int) {
	word, start := wordBounds(line, cursor)
	if word == "" {
		return nil, start
	}

	candidates := append(append([]string(nil), keywords...), env.Names()...)

	for _, m := range fuzzy.Find(word, candidates) {
		matches = append(matches, candidates[m.Index])
	}

	return matches, start
}
