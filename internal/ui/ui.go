// Package ui provides stderr-based output for aviary: per-design
// analysis lines, corpus summary tables, and the representative-design
// report.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/finchworks/aviary/internal/complexity"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// Printer writes human-readable output. Out defaults to os.Stderr,
// keeping stdout clean for --json consumers.
type Printer struct {
	Out io.Writer
}

func New() *Printer {
	return &Printer{Out: os.Stderr}
}

// out returns the effective writer (os.Stderr if Out is nil).
func (p *Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stderr
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.out(), bold+cyan+"  ╔══════════════════════════════════════╗"+reset)
	fmt.Fprintln(p.out(), bold+cyan+"  ║"+reset+bold+"   AVIARY  "+dim+"UAV complexity analysis"+reset+bold+cyan+"    ║"+reset)
	fmt.Fprintln(p.out(), bold+cyan+"  ╚══════════════════════════════════════╝"+reset)
	fmt.Fprintln(p.out())
}

func (p *Printer) CorpusFound(count int) {
	fmt.Fprintf(p.out(), cyan+"◆ corpus"+reset+" %d design(s) found\n", count)
}

func (p *Printer) DesignLine(r complexity.DesignResult) {
	fmt.Fprintf(p.out(), green+"✓ %s"+reset+dim+" (%d nodes, %d edges)"+reset+
		"  total %.3f "+dim+"[div %.3f  flex %.3f  comb %.3f]"+reset+"\n",
		r.Design, r.Nodes, r.Edges,
		r.System.TotalComplexity, r.System.HDiversity,
		r.System.HFlexibility, r.System.HCombinability)
}

func (p *Printer) DesignSkipped(design string, err error) {
	fmt.Fprintf(p.out(), yellow+"⚠ %s skipped"+reset+" — %v\n", design, err)
}

func (p *Printer) Summary(s complexity.Summary) {
	fmt.Fprintf(p.out(), "\n"+bold+magenta+"── corpus summary (%d designs) ──"+reset+"\n", s.Designs)
	fmt.Fprintf(p.out(), "  total complexity  %.3f ± %.3f "+dim+"(min %.3f, max %.3f)"+reset+"\n",
		s.TotalComplexity.Mean, s.TotalComplexity.Std, s.Min, s.Max)
	fmt.Fprintf(p.out(), "  diversity         %.3f ± %.3f\n", s.Diversity.Mean, s.Diversity.Std)
	fmt.Fprintf(p.out(), "  flexibility       %.3f ± %.3f\n", s.Flexibility.Mean, s.Flexibility.Std)
	fmt.Fprintf(p.out(), "  combinability     %.3f ± %.3f\n", s.Combinability.Mean, s.Combinability.Std)
}

func (p *Printer) CorpusStats(stats complexity.CorpusStats) {
	fmt.Fprintf(p.out(), dim+"  %d designs, %d nodes (avg %.1f), %d edges (avg %.1f), %d component types"+reset+"\n",
		stats.DesignCount, stats.TotalNodes, stats.AvgNodes,
		stats.TotalEdges, stats.AvgEdges, len(stats.ComponentTypes))
}

func (p *Printer) Selection(sel complexity.Selection) {
	fmt.Fprintf(p.out(), "\n"+bold+blue+"%s"+reset+" — %s "+dim+"(design %d)"+reset+"\n",
		sel.Label, sel.Design, sel.Number)
	fmt.Fprintf(p.out(), "  nodes %d  edges %d  component types %d  connection types %d\n",
		sel.Nodes, sel.Edges, sel.TypeCount, sel.ConnTypeCount)
	fmt.Fprintf(p.out(), "  reciprocal pairs %d  one-way edges %d  uncertainty %.2f\n",
		sel.Reciprocal, sel.OneWay, sel.UncertaintyScore)
	fmt.Fprintf(p.out(), "  total complexity %.3f\n", sel.System.TotalComplexity)
}

func (p *Printer) MissingSelection(label string) {
	fmt.Fprintf(p.out(), yellow+"⚠ warning:"+reset+" no design found for %q\n", label)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.out(), red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out(), dim+"%s"+reset+"\n", msg)
}

func (p *Printer) WatchTriggered(design string) {
	fmt.Fprintf(p.out(), cyan+"◆ change"+reset+" %s — re-analyzing corpus\n", design)
}
