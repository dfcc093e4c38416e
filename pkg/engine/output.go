package engine

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/wildfunctions/symdiff/pkg/check"
	"github.com/wildfunctions/symdiff/pkg/expr"
)

// CaseReport summarizes one checked expression.
type CaseReport struct {
	Index           int      `json:"index" yaml:"index"`
	Expr            string   `json:"expr" yaml:"expr"`
	ExprLaTeX       string   `json:"expr_latex" yaml:"expr_latex"`
	Simplified      string   `json:"simplified" yaml:"simplified"`
	Derivative      string   `json:"derivative" yaml:"derivative"`
	DerivativeLaTeX string   `json:"derivative_latex" yaml:"derivative_latex"`
	Complexity      float64  `json:"complexity" yaml:"complexity"`
	Shrunk          string   `json:"shrunk,omitempty" yaml:"shrunk,omitempty"`
	Outcome         string   `json:"outcome" yaml:"outcome"`
	Compared        int      `json:"compared" yaml:"compared"`
	MeanDigits      float64  `json:"mean_digits" yaml:"mean_digits"`
	MinDigits       float64  `json:"min_digits" yaml:"min_digits"`
	Failures        []string `json:"failures,omitempty" yaml:"failures,omitempty"`
	ElapsedMillis   float64  `json:"elapsed_ms" yaml:"elapsed_ms"`
}

func newCaseReport(idx int, c check.Case, r check.Result) CaseReport {
	return CaseReport{
		Index:           idx,
		Expr:            c.Expr.String(),
		ExprLaTeX:       c.Expr.LaTeX(),
		Simplified:      r.Simplified.String(),
		Derivative:      r.Derivative.String(),
		DerivativeLaTeX: r.Derivative.LaTeX(),
		Complexity:      expr.WeightedComplexity(r.Derivative),
		Outcome:         r.Outcome.String(),
		Compared:        r.Compared,
		MeanDigits:      r.MeanDigits(),
		MinDigits:       r.MinDigits(),
		Failures:        r.Failures,
		ElapsedMillis:   float64(r.Elapsed.Microseconds()) / 1000,
	}
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	RunID          string       `json:"run_id" yaml:"run_id"`
	Config         Config       `json:"config" yaml:"config"`
	Started        string       `json:"started" yaml:"started"`
	ElapsedSeconds float64      `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Checked        int          `json:"checked" yaml:"checked"`
	Passed         int          `json:"passed" yaml:"passed"`
	Failed         int          `json:"failed" yaml:"failed"`
	Skipped        int          `json:"skipped" yaml:"skipped"`
	MeanDigits     float64      `json:"mean_digits" yaml:"mean_digits"`
	P10Digits      float64      `json:"p10_digits" yaml:"p10_digits"`
	Canceled       bool         `json:"canceled,omitempty" yaml:"canceled,omitempty"`
	Failures       []CaseReport `json:"failures,omitempty" yaml:"failures,omitempty"`
	Cases          []CaseReport `json:"cases,omitempty" yaml:"cases,omitempty"`
}

// WriteCaseReport writes a single case in human-readable format.
func WriteCaseReport(w io.Writer, c CaseReport) {
	fmt.Fprintf(w, "Case %4d | %-7s | %4.1f digits | %s\n",
		c.Index, c.Outcome, c.MeanDigits, c.Expr)
}

// sortByDigits returns a copy of cases sorted by MeanDigits ascending, so
// the worst agreement comes first.
func sortByDigits(cases []CaseReport) []CaseReport {
	sorted := make([]CaseReport, len(cases))
	copy(sorted, cases)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MeanDigits != sorted[j].MeanDigits {
			return sorted[i].MeanDigits < sorted[j].MeanDigits
		}
		return sorted[i].Index < sorted[j].Index
	})
	return sorted
}

// WriteFailures writes the failing cases, worst first.
func WriteFailures(w io.Writer, failures []CaseReport) {
	fmt.Fprintln(w, "\n--- Failures ---")
	for i, c := range sortByDigits(failures) {
		fmt.Fprintf(w, "  #%d: [case %d] %5.1f digits | %s\n", i+1, c.Index, c.MeanDigits, c.Expr)
		if c.Shrunk != "" {
			fmt.Fprintf(w, "      shrunk:     %s\n", c.Shrunk)
		}
		fmt.Fprintf(w, "      derivative: %s\n", c.Derivative)
		for _, f := range c.Failures {
			fmt.Fprintf(w, "      - %s\n", f)
		}
	}
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	for _, c := range r.Cases {
		WriteCaseReport(w, c)
	}
	if len(r.Failures) > 0 {
		WriteFailures(w, r.Failures)
	}
	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	fmt.Fprintf(w, "Run:       %s\n", r.RunID)
	fmt.Fprintf(w, "Pool:      %s (depth %d, order %d, seed %d)\n",
		r.Config.Pool, r.Config.MaxDepth, r.Config.Order, r.Config.Seed)
	fmt.Fprintf(w, "Checked:   %d of %d\n", r.Checked, r.Config.Samples)
	fmt.Fprintf(w, "Passed:    %d\n", r.Passed)
	fmt.Fprintf(w, "Failed:    %d\n", r.Failed)
	fmt.Fprintf(w, "Skipped:   %d\n", r.Skipped)
	fmt.Fprintf(w, "Digits:    %.1f mean, %.1f p10\n", r.MeanDigits, r.P10Digits)
	fmt.Fprintf(w, "Elapsed:   %.2fs\n", r.ElapsedSeconds)
	if r.Canceled {
		fmt.Fprintln(w, "Canceled before all cases were checked")
	}
	fmt.Fprintln(w, "==================================")
}

// WriteTextExpr writes a single-expression report in human-readable format.
func WriteTextExpr(w io.Writer, r ExprReport) {
	fmt.Fprintf(w, "Input:       %s\n", r.Input)
	fmt.Fprintf(w, "Simplified:  %s\n", r.Simplified)
	fmt.Fprintf(w, "LaTeX:       %s\n", r.LaTeX)
	fmt.Fprintf(w, "d^%d/d%s^%d:   %s\n", r.Order, r.Var, r.Order, r.Derivative)
	fmt.Fprintf(w, "LaTeX:       %s\n", r.DerivativeLaTeX)
	if r.At != nil {
		fmt.Fprintf(w, "At %s = %g:  value %s, derivative %s\n",
			r.Var, *r.At, formatValue(r.Value), formatValue(r.DerivativeValue))
	}
	if r.Check != nil {
		fmt.Fprintf(w, "Check:       %s (%d comparisons, %.1f digits)\n",
			r.Check.Outcome, r.Check.Compared, r.Check.MeanDigits)
		for _, f := range r.Check.Failures {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.15g", *v)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFinal writes the final report in the given format.
func WriteFinal(w io.Writer, format string, r FinalReport) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	case "latex":
		WriteLaTeXFinal(w, r)
		return nil
	case "text", "":
		WriteTextFinal(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteExpr writes a single-expression report in the given format.
func WriteExpr(w io.Writer, format string, r ExprReport) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	case "latex":
		fmt.Fprintf(w, "\\[\n  \\frac{d^{%d}}{d%s^{%d}} %s = %s\n\\]\n", r.Order, r.Var, r.Order, r.LaTeX, r.DerivativeLaTeX)
		return nil
	case "text", "":
		WriteTextExpr(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	return strings.NewReplacer("_", `\_`, "%", `\%`, "#", `\#`).Replace(s)
}

// WriteLaTeXFinal writes a compilable LaTeX document of the failing cases.
func WriteLaTeXFinal(w io.Writer, r FinalReport) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintf(w, "\\title{Derivative check --- pool \\texttt{%s}}\n", latexEscape(r.Config.Pool))
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Run: \\texttt{%s}\\\\\n", r.RunID)
	fmt.Fprintf(w, "Samples: %d, Depth: %d, Order: %d, Seed: %d\\\\\n",
		r.Config.Samples, r.Config.MaxDepth, r.Config.Order, r.Config.Seed)
	fmt.Fprintf(w, "Passed: %d, Failed: %d, Skipped: %d, Mean digits: %.1f\n\n",
		r.Passed, r.Failed, r.Skipped, r.MeanDigits)

	for i, c := range sortByDigits(r.Failures) {
		fmt.Fprintf(w, "\\subsection*{\\#%d --- case %d, %.1f digits}\n", i+1, c.Index, c.MeanDigits)
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  f = %s\n", c.ExprLaTeX)
		fmt.Fprintln(w, `\]`)
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  f^{(%d)} = %s\n", r.Config.Order, c.DerivativeLaTeX)
		fmt.Fprintln(w, `\]`)
		for _, f := range c.Failures {
			fmt.Fprintf(w, "\\noindent \\verb|%s|\\\\\n", f)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, `\end{document}`)
}
