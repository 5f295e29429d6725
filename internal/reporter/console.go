package reporter

import (
	"fmt"
	"io"

	"github.com/aleister1102/webwatch/internal/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// ConsolePrinter prints per-target status lines while a cycle runs and a
// summary table once it finishes.
type ConsolePrinter struct {
	out     io.Writer
	success func(format string, a ...interface{}) string
	warning func(format string, a ...interface{}) string
	failure func(format string, a ...interface{}) string
	info    func(format string, a ...interface{}) string
}

// NewConsolePrinter creates a new ConsolePrinter writing to out.
func NewConsolePrinter(out io.Writer) *ConsolePrinter {
	return &ConsolePrinter{
		out:     out,
		success: color.New(color.FgGreen).SprintfFunc(),
		warning: color.New(color.FgYellow).SprintfFunc(),
		failure: color.New(color.FgRed).SprintfFunc(),
		info:    color.New(color.FgCyan).SprintfFunc(),
	}
}

// PrintResult prints one status line for a finished target check. Safe to call
// on a nil printer.
func (cp *ConsolePrinter) PrintResult(result models.CheckResult) {
	if cp == nil {
		return
	}

	name := result.Target.Name
	switch result.Status {
	case models.StatusChanged:
		fmt.Fprintln(cp.out, cp.warning("Change detected on: %s", name))
	case models.StatusInitial:
		fmt.Fprintln(cp.out, cp.info("First check for: %s", name))
	case models.StatusUnchanged:
		fmt.Fprintln(cp.out, cp.success("No change for: %s", name))
	case models.StatusError:
		fmt.Fprintln(cp.out, cp.failure("Error checking %s (%s): %v", name, result.Target.URL, result.Err))
	}
}

// PrintSummary renders the end-of-run table with one row per target. Safe to
// call on a nil printer.
func (cp *ConsolePrinter) PrintSummary(results []models.CheckResult) error {
	if cp == nil {
		return nil
	}

	table := tablewriter.NewTable(cp.out)
	table.Header([]string{"Name", "Status", "Digest"})

	for _, result := range results {
		if err := table.Append([]string{result.Target.Name, result.Status.String(), summaryDigest(result)}); err != nil {
			return err
		}
	}

	return table.Render()
}

// summaryDigest is the digest column value: the current digest when the fetch
// succeeded, the retained prior digest on error, or a dash for no history.
func summaryDigest(result models.CheckResult) string {
	digest := result.NewDigest
	if result.Status == models.StatusError {
		digest = result.OldDigest
	}
	if digest == "" {
		return "-"
	}
	if len(digest) > 8 {
		digest = digest[:8]
	}
	return digest + "..."
}
