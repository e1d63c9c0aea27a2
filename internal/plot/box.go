package plot

import (
	"fmt"
	"io"
	"math"
)

// BoxStat is a five-number summary for one country, ready to render.
type BoxStat struct {
	Name   string
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

const minBoxWidth = 20

// RenderBoxes draws horizontal box-and-whisker summaries on a scale shared
// by all countries, so spread and central tendency compare directly.
func RenderBoxes(w io.Writer, title string, boxes []BoxStat, totalWidth int) error {
	if len(boxes) == 0 {
		return nil
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	nameWidth := 0
	for _, b := range boxes {
		if b.Min < lo {
			lo = b.Min
		}
		if b.Max > hi {
			hi = b.Max
		}
		if n := displayWidth(b.Name); n > nameWidth {
			nameWidth = n
		}
	}
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}

	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	// Name column, two separators, and a trailing median annotation.
	boxWidth := totalWidth - nameWidth - 2 - 14
	if boxWidth < minBoxWidth {
		boxWidth = minBoxWidth
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Scale: %.1f .. %.1f %s (|min [q1 #median q3] max|)\n", lo, hi, unitLabel); err != nil {
		return err
	}
	for _, b := range boxes {
		line := renderBoxLine(b, lo, hi, boxWidth)
		name := padCell(b.Name, nameWidth, false)
		if _, err := fmt.Fprintf(w, "%s  %s  med %.1f\n", name, line, b.Median); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func renderBoxLine(b BoxStat, lo, hi float64, width int) string {
	col := func(v float64) int {
		pos := (v - lo) / (hi - lo)
		c := int(math.Round(pos * float64(width-1)))
		if c < 0 {
			c = 0
		}
		if c >= width {
			c = width - 1
		}
		return c
	}

	cells := make([]byte, width)
	for i := range cells {
		cells[i] = ' '
	}
	for i := col(b.Min); i <= col(b.Max); i++ {
		cells[i] = '-'
	}
	for i := col(b.Q1); i <= col(b.Q3); i++ {
		cells[i] = '='
	}
	cells[col(b.Min)] = '|'
	cells[col(b.Max)] = '|'
	cells[col(b.Q1)] = '['
	cells[col(b.Q3)] = ']'
	cells[col(b.Median)] = '#'
	return string(cells)
}

// BoxWidthFor computes the box area width used for a given total width and
// name column, mirroring RenderBoxes' layout.
func BoxWidthFor(totalWidth, nameWidth int) int {
	boxWidth := totalWidth - nameWidth - 2 - 14
	if boxWidth < minBoxWidth {
		boxWidth = minBoxWidth
	}
	return boxWidth
}
