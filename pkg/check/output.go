package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/wildfunctions/exprequiv/pkg/cases"
)

// CaseResult is the outcome of checking one case.
type CaseResult struct {
	Name         string     `json:"name"`
	Want         cases.Want `json:"want"`
	A            string     `json:"a"`
	B            string     `json:"b"`
	LaTeXA       string     `json:"latex_a"`
	LaTeXB       string     `json:"latex_b"`
	NormalA      string     `json:"normal_a"`
	NormalB      string     `json:"normal_b"`
	NormalLaTeXA string     `json:"normal_latex_a"`
	NormalLaTeXB string     `json:"normal_latex_b"`
	Equivalent   bool       `json:"equivalent"`
	ValueA       *float64   `json:"value_a,omitempty"` // nil when evaluation failed
	ValueB       *float64   `json:"value_b,omitempty"`
	NumericEqual bool       `json:"numeric_equal"`
	Diff         []string   `json:"diff,omitempty"`
	Problems     []string   `json:"problems,omitempty"`
	Passed       bool       `json:"passed"`
}

// Report summarizes a check run.
type Report struct {
	Config   Config       `json:"config"`
	Results  []CaseResult `json:"results"`
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Canceled bool         `json:"canceled,omitempty"`
}

// FuzzFailure records one property a random expression violated.
type FuzzFailure struct {
	Tree     string `json:"tree"`
	Normal   string `json:"normal"`
	Property string `json:"property"`
	Detail   string `json:"detail"`
}

// FuzzReport summarizes a fuzz run.
type FuzzReport struct {
	Config   Config        `json:"config"`
	Seed     int64         `json:"seed"`
	Checked  int           `json:"checked"`
	Failures []FuzzFailure `json:"failures,omitempty"`
	Canceled bool          `json:"canceled,omitempty"`
}

var (
	passStyle   = color.New(color.FgGreen, color.Bold)
	failStyle   = color.New(color.FgRed, color.Bold)
	nameStyle   = color.New(color.FgCyan, color.Bold)
	normalStyle = color.New(color.FgHiBlue)
	detailStyle = color.New(color.FgYellow)
)

func formatValue(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%g", *v)
}

// WriteText writes the report in human-readable format.
func WriteText(w io.Writer, r Report) {
	for _, c := range r.Results {
		verdict := passStyle.Sprint("PASS")
		if !c.Passed {
			verdict = failStyle.Sprint("FAIL")
		}
		fmt.Fprintf(w, "%s %s (want %s)\n", verdict, nameStyle.Sprint(c.Name), c.Want)
		fmt.Fprintf(w, "  a: %s => %s = %s\n", c.A, normalStyle.Sprint(c.NormalA), formatValue(c.ValueA))
		fmt.Fprintf(w, "  b: %s => %s = %s\n", c.B, normalStyle.Sprint(c.NormalB), formatValue(c.ValueB))
		for _, d := range c.Diff {
			fmt.Fprintf(w, "  %s\n", detailStyle.Sprint(d))
		}
		for _, p := range c.Problems {
			fmt.Fprintf(w, "  %s %s\n", failStyle.Sprint("problem:"), p)
		}
	}

	fmt.Fprintln(w, "\n========== SUMMARY ==========")
	fmt.Fprintf(w, "Cases:     %d\n", len(r.Results))
	fmt.Fprintf(w, "Passed:    %s\n", passStyle.Sprint(r.Passed))
	if r.Failed > 0 {
		fmt.Fprintf(w, "Failed:    %s\n", failStyle.Sprint(r.Failed))
	} else {
		fmt.Fprintf(w, "Failed:    %d\n", r.Failed)
	}
	if r.Canceled {
		fmt.Fprintln(w, failStyle.Sprint("Run canceled before all cases were checked"))
	}
	fmt.Fprintln(w, "=============================")
}

// WriteFuzzText writes the fuzz report in human-readable format.
func WriteFuzzText(w io.Writer, r FuzzReport) {
	for _, f := range r.Failures {
		fmt.Fprintf(w, "%s %s\n", failStyle.Sprint(f.Property), f.Tree)
		fmt.Fprintf(w, "  normal: %s\n", normalStyle.Sprint(f.Normal))
		fmt.Fprintf(w, "  %s\n", detailStyle.Sprint(f.Detail))
	}

	fmt.Fprintln(w, "\n========== FUZZ ==========")
	fmt.Fprintf(w, "Pool:      %s\n", r.Config.Pool)
	fmt.Fprintf(w, "Seed:      %d\n", r.Seed)
	fmt.Fprintf(w, "Depth:     %d\n", r.Config.MaxDepth)
	fmt.Fprintf(w, "Checked:   %d/%d\n", r.Checked, r.Config.Samples)
	if len(r.Failures) > 0 {
		fmt.Fprintf(w, "Failures:  %s\n", failStyle.Sprint(len(r.Failures)))
	} else {
		fmt.Fprintf(w, "Failures:  %s\n", passStyle.Sprint(0))
	}
	fmt.Fprintln(w, "==========================")
}

// WriteJSON writes a Report or FuzzReport as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	r := strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "&", `\&`, "%", `\%`, "#", `\#`)
	return r.Replace(s)
}

// WriteLaTeX writes a compilable LaTeX document listing every case with its
// two expressions and their normal forms.
func WriteLaTeX(w io.Writer, r Report) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintln(w, `\title{Expression Equivalence Report}`)
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Cases: %d, passed: %d, failed: %d\n\n", len(r.Results), r.Passed, r.Failed)

	for _, c := range r.Results {
		verdict := "pass"
		if !c.Passed {
			verdict = "FAIL"
		}
		rel := `\equiv`
		if !c.Equivalent {
			rel = `\not\equiv`
		}
		fmt.Fprintf(w, "\\subsection*{%s --- %s (want %s)}\n", latexEscape(c.Name), verdict, c.Want)
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  %s %s %s\n", c.LaTeXA, rel, c.LaTeXB)
		fmt.Fprintln(w, `\]`)
		fmt.Fprintln(w, `\noindent Normal forms:`)
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  %s \\quad\\text{and}\\quad %s\n", c.NormalLaTeXA, c.NormalLaTeXB)
		fmt.Fprintln(w, `\]`)
		for _, p := range c.Problems {
			fmt.Fprintf(w, "\\noindent Problem: \\verb|%s|\n\n", strings.ReplaceAll(p, "|", "/"))
		}
	}

	fmt.Fprintln(w, `\end{document}`)
}

// WriteFuzzLaTeX writes a compilable LaTeX document with the fuzz run's
// settings and one entry per property violation.
func WriteFuzzLaTeX(w io.Writer, r FuzzReport) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintln(w, `\title{Normal Form Fuzz Report}`)
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Pool: %s, seed: %d, depth: %d, checked: %d/%d, failures: %d\n\n",
		latexEscape(r.Config.Pool), r.Seed, r.Config.MaxDepth, r.Checked, r.Config.Samples, len(r.Failures))
	if r.Canceled {
		fmt.Fprintln(w, `\noindent Run canceled before all samples were checked.`)
		fmt.Fprintln(w)
	}

	for _, f := range r.Failures {
		fmt.Fprintf(w, "\\subsection*{%s}\n", latexEscape(f.Property))
		fmt.Fprintf(w, "\\noindent Expression: \\verb|%s|\n\n", strings.ReplaceAll(f.Tree, "|", "/"))
		fmt.Fprintf(w, "\\noindent Normal form: \\verb|%s|\n\n", strings.ReplaceAll(f.Normal, "|", "/"))
		fmt.Fprintf(w, "\\noindent Detail: \\verb|%s|\n\n", strings.ReplaceAll(f.Detail, "|", "/"))
	}

	fmt.Fprintln(w, `\end{document}`)
}
