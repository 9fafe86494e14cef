package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/decorator/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the report, mostly for tests
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportFailure reports one file that produced no decorator. The message is
// the bare failure reason; suggestions follow in verbose mode.
func (r *DiagnosticReporter) ReportFailure(result FileResult) {
	red := color.New(color.FgRed)
	red.Fprint(r.out, "✗ ")
	fmt.Fprintf(r.out, "%s: %s\n", result.Path, result.Err.Error())

	if !r.verbose {
		return
	}
	var coded *errors.BaseError
	if stderrors.As(result.Err, &coded) {
		for _, s := range coded.Suggestions() {
			fmt.Fprintf(r.out, "    hint: %s\n", s)
		}
	}
}

// ReportError provides comprehensive error reporting for a failed run
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Decorator Generation Failed\n")
	fmt.Fprintf(r.out, "==================================\n\n")

	var coded *errors.BaseError
	if stderrors.As(err, &coded) {
		r.reportCodedError(coded)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

// reportCodedError reports a BaseError with full context and suggestions
func (r *DiagnosticReporter) reportCodedError(err *errors.BaseError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Message)

	if r.verbose && err.Cause != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", err.Cause.Error())
	}

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if len(err.Suggestions()) > 0 {
		r.printSuggestions(err.Suggestions())
	}

	r.printAdditionalHelp(err.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string

	switch code {
	case errors.IOErrorCode:
		title = "I/O Error"
	case errors.SyntaxErrorCode:
		title = "Java Syntax Error"
	case errors.ValidationErrorCode:
		title = "Declaration Error"
	case errors.TypeResolutionErrorCode:
		title = "Type Resolution Error"
	case errors.InvariantErrorCode:
		title = "Internal Error"
	case errors.GenerationErrorCode:
		title = "Code Generation Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	default:
		title = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information in a readable format, important
// keys first
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"type", "class", "path"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "type":
		return "Type"
	case "class":
		return "Class"
	case "path":
		return "Path"
	default:
		// snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.ValidationErrorCode:
		fmt.Fprintf(r.out, "Decorator Declaration Requirements:\n")
		fmt.Fprintf(r.out, "  - A top-level class in a named package\n")
		fmt.Fprintf(r.out, "  - implements Decorator<T> with T a class or interface type\n")
		fmt.Fprintf(r.out, "  - T imported with a single-type import\n\n")

	case errors.TypeResolutionErrorCode:
		fmt.Fprintf(r.out, "Type Loading:\n")
		fmt.Fprintf(r.out, "  - --source-path lists directories and source jars searched for T\n")
		fmt.Fprintf(r.out, "  - --descriptor-dir lists directories of YAML type descriptors\n")
		fmt.Fprintf(r.out, "  - 'decorator describe <type>' prints the descriptor of a loadable type\n\n")

	case errors.InvariantErrorCode:
		fmt.Fprintf(r.out, "This is a bug in the generator. Please report it with the declaration that triggered it.\n\n")
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Run with --log-level debug for the structured trace\n")
}

// printErrorChain prints every error of the cause chain
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "\nError Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "  %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
		level++
	}
}

// ReportSuccess reports a finished run with summary information
func (r *DiagnosticReporter) ReportSuccess(summary *GenerationSummary) {
	fmt.Fprintf(r.out, "\nDecorator Generation Completed\n")
	fmt.Fprintf(r.out, "==============================\n\n")

	fmt.Fprintf(r.out, "Run %s\n", summary.RunID)
	fmt.Fprintf(r.out, "Scanned %d files, %d declared decorators\n", summary.FilesScanned, summary.Candidates)
	if summary.Generated > 0 {
		fmt.Fprintf(r.out, "Generated %d decorators\n", summary.Generated)
	}
	if summary.Failed > 0 {
		fmt.Fprintf(r.out, "Failed %d files\n", summary.Failed)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}
