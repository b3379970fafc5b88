// Package output provides console output and exit codes for the
// dayone-export CLI.
//
// # Printer
//
// Every command writes through a Printer, which switches between styled
// human output and JSON based on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Wrote("html", "Journal/output_Journal.json_2024-05-01.html")
//	printer.Skipped("pdf", "no PDF converter found")
//	printer.Warn("skipped record %d: missing \"text\"", 3)
//
// In JSON mode the status and warning helpers are silent; commands emit a
// single result object with WriteJSON instead. Errors become
// {"error": "message", "code": N}.
//
// # Colors
//
// Styles use lipgloss and are disabled when the output is not a terminal,
// unless --color=always. ResolveColorMode combines the flag with TTY
// detection.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: run completed, even with skipped formats
//	output.ExitUserError   // 1: bad arguments or unusable input
//	output.ExitSystemError // 2: I/O failure, or renderer failure with --strict
package output
