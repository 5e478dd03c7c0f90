package pdfparser

import (
	"math"
	"sort"
	"strings"
)

const (
	// lineTolerance is the largest Y distance, in points, between runs of
	// the same line.
	lineTolerance = 2.0
	// wordGapRatio and phraseGapRatio are fractions of the font size: a
	// smaller gap joins glyphs into a word, or header words into one
	// column title.
	wordGapRatio   = 0.2
	phraseGapRatio = 1.0
	// rightSlack is how far, as a fraction of the font size, a right
	// aligned value may run past the end of its column title.
	rightSlack = 2.0
)

// titleStarts are the words that open a column title. A header word from
// this set starts a new column even when it sits close to the previous one.
var titleStarts = map[string]bool{
	"txn": true, "value": true,
	"description": true, "narration": true, "particulars": true, "details": true,
	"ref": true, "reference": true,
	"debit": true, "withdrawal": true, "withdrawals": true,
	"credit": true, "deposit": true, "deposits": true,
	"balance": true, "closing": true,
}

// glyph is a positioned text run as reported by the PDF library.
type glyph struct {
	X, Y, W  float64
	FontSize float64
	S        string
}

type word struct {
	start, end float64
	fontSize   float64
	text       string
}

// column is the horizontal extent of one header title.
type column struct {
	start, end float64
	fontSize   float64
}

// tableLayout holds the columns of the current table. They survive page
// breaks so that continuation pages without a header still split.
type tableLayout struct {
	columns []column
}

// pageRows converts the glyphs of one page into table rows.
func (l *tableLayout) pageRows(glyphs []glyph) [][]string {
	var rows [][]string
	dataRows := 0
	for _, line := range groupLines(glyphs) {
		words := splitWords(line)
		if len(words) == 0 {
			continue
		}

		if isHeader(words) {
			phrases := joinPhrases(words)
			l.columns = l.columns[:0]
			header := make([]string, len(phrases))
			for i, p := range phrases {
				l.columns = append(l.columns, column{start: p.start, end: p.end, fontSize: p.fontSize})
				header[i] = p.text
			}
			rows = append(rows, header)
			dataRows = 0
			continue
		}
		if len(l.columns) == 0 {
			// Text above the first table.
			continue
		}

		cells := l.assign(words)
		if cells[0] == "" && dataRows > 0 {
			// Wrapped narration belongs to the line above.
			fold(rows[len(rows)-1], cells)
			continue
		}
		rows = append(rows, cells)
		if cells[0] != "" {
			dataRows++
		}
	}
	return rows
}

// assign places every word in the column whose span holds its start. A
// column spans from the start of its title to the start of the next one;
// the first and last columns are open ended. A word that crosses into the
// next column and ends near that column's title end is a right aligned
// value and belongs to the next column.
func (l *tableLayout) assign(words []word) []string {
	cells := make([]string, len(l.columns))
	for _, w := range words {
		col := l.columnOf(w)
		if cells[col] == "" {
			cells[col] = w.text
		} else {
			cells[col] += " " + w.text
		}
	}
	return cells
}

func (l *tableLayout) columnOf(w word) int {
	col := 0
	for i := 1; i < len(l.columns); i++ {
		if w.start >= l.columns[i].start {
			col = i
		}
	}
	if next := col + 1; next < len(l.columns) {
		c := l.columns[next]
		if w.end > c.start && w.end <= c.end+gapLimit(c.fontSize, rightSlack) {
			return next
		}
	}
	return col
}

func fold(target, cells []string) {
	if len(target) != len(cells) {
		return
	}
	for i, c := range cells {
		if c == "" {
			continue
		}
		if target[i] == "" {
			target[i] = c
		} else {
			target[i] += " " + c
		}
	}
}

// isHeader reports whether a line is a statement table header.
func isHeader(words []word) bool {
	var hasDate, hasBalance bool
	for _, w := range words {
		lower := strings.ToLower(w.text)
		hasDate = hasDate || strings.Contains(lower, "date")
		hasBalance = hasBalance || strings.Contains(lower, "balance")
	}
	return hasDate && hasBalance
}

// groupLines groups glyphs into lines, top of the page first, each line
// sorted left to right.
func groupLines(glyphs []glyph) [][]glyph {
	sorted := make([]glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	// PDF Y grows upwards.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var lines [][]glyph
	var lineY float64
	for _, g := range sorted {
		if len(lines) == 0 || math.Abs(lineY-g.Y) > lineTolerance {
			lines = append(lines, nil)
			lineY = g.Y
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], g)
	}
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].X < line[j].X
		})
	}
	return lines
}

// splitWords merges the glyphs of one line into words. Whitespace runs and
// gaps wider than a fraction of the font size end a word.
func splitWords(line []glyph) []word {
	var words []word
	var cur *word
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.text) != "" {
			cur.text = strings.TrimSpace(cur.text)
			words = append(words, *cur)
		}
		cur = nil
	}

	for _, g := range line {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if cur != nil && g.X-cur.end > gapLimit(g.FontSize, wordGapRatio) {
			flush()
		}
		if cur == nil {
			cur = &word{start: g.X, end: g.X + g.W, fontSize: g.FontSize}
		}
		cur.text += g.S
		cur.end = math.Max(cur.end, g.X+g.W)
	}
	flush()
	return words
}

// joinPhrases merges words separated by a normal space, turning a header
// line into column titles such as "Ref No." or "Txn Date". A word that opens
// a known title always starts a new phrase.
func joinPhrases(words []word) []word {
	var phrases []word
	for _, w := range words {
		if n := len(phrases); n > 0 && !startsTitle(w.text) &&
			w.start-phrases[n-1].end <= gapLimit(w.fontSize, phraseGapRatio) {
			phrases[n-1].text += " " + w.text
			phrases[n-1].end = w.end
			continue
		}
		phrases = append(phrases, w)
	}
	return phrases
}

func startsTitle(text string) bool {
	return titleStarts[strings.ToLower(strings.Trim(text, ".:/-"))]
}

func gapLimit(fontSize, ratio float64) float64 {
	if fontSize <= 0 {
		fontSize = 10
	}
	return fontSize * ratio
}
