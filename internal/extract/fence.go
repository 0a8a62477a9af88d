package extract

import (
	"regexp"
	"strings"
)

const fenceChar = '`'

// minFenceLen is the shortest backtick run that opens or closes a block.
const minFenceLen = 3

var titleAttrRe = regexp.MustCompile(`title="([^"]+)"`)

// fenceBlock is one runnable block found in a markdown document.
type fenceBlock struct {
	Title string
	Body  string
}

// fenceState is the lexer position relative to fenced regions.
type fenceState int

const (
	stateOutside fenceState = iota
	stateInside
)

// pendingBlock holds the attributes of an open candidate block until its
// closing fence is seen.
type pendingBlock struct {
	title string
	body  []string
}

// fenceLexer finds fenced code blocks tagged with a SQL dialect that carry
// both a title attribute and the runnable marker on the opening fence line.
type fenceLexer struct {
	dialect  string
	markerRe *regexp.Regexp
}

func newFenceLexer(dialect, marker string) *fenceLexer {
	return &fenceLexer{
		dialect:  dialect,
		markerRe: regexp.MustCompile(`\b` + regexp.QuoteMeta(marker) + `\b`),
	}
}

// Lex returns the candidate blocks of text in document order. Blocks that
// are not candidates are skipped whole, and an unterminated block at the end
// of the text is dropped.
func (l *fenceLexer) Lex(text string) []fenceBlock {
	var (
		blocks   []fenceBlock
		state    = stateOutside
		fenceLen int
		pending  *pendingBlock
	)

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")

		switch state {
		case stateOutside:
			n, info, ok := openingFence(line)
			if !ok {
				continue
			}
			state = stateInside
			fenceLen = n
			pending = l.candidate(info)

		case stateInside:
			if isClosingFence(line, fenceLen) {
				if pending != nil {
					blocks = append(blocks, fenceBlock{
						Title: pending.title,
						Body:  strings.TrimSpace(strings.Join(pending.body, "\n")),
					})
				}
				state = stateOutside
				pending = nil
				continue
			}
			if pending != nil {
				pending.body = append(pending.body, line)
			}
		}
	}

	return blocks
}

// candidate parses the info string of an opening fence. It returns nil when
// the block is not a runnable example.
func (l *fenceLexer) candidate(info string) *pendingBlock {
	fields := strings.Fields(info)
	if len(fields) == 0 || fields[0] != l.dialect {
		return nil
	}
	m := titleAttrRe.FindStringSubmatch(info)
	if m == nil {
		return nil
	}
	// The marker must sit outside the quoted title.
	if !l.markerRe.MatchString(titleAttrRe.ReplaceAllString(info, "")) {
		return nil
	}
	return &pendingBlock{title: strings.TrimSpace(m[1])}
}

// openingFence reports whether line opens a fenced block and returns the
// fence length and the info string.
func openingFence(line string) (int, string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	n := backtickRun(trimmed)
	if n < minFenceLen {
		return 0, "", false
	}
	info := trimmed[n:]
	// CommonMark: the info string of a backtick fence cannot contain backticks.
	if strings.ContainsRune(info, fenceChar) {
		return 0, "", false
	}
	return n, info, true
}

// isClosingFence reports whether line closes a block opened with n backticks.
func isClosingFence(line string, n int) bool {
	return backtickRun(strings.TrimLeft(line, " \t")) >= n
}

func backtickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == fenceChar {
		n++
	}
	return n
}
