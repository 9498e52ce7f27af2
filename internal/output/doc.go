// Package output provides printing and exit-coded errors for the folio CLI
// and servers.
//
// # Printer
//
// Every command writes through a Printer so the same command works for a
// person at a terminal and for a script using --json:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Written("field-notes.pdf", "/out/field-notes.pdf", len(data))
//	printer.Error(err)
//
// In JSON mode errors are {"error": "message", "code": N}.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, unreadable or unknown story
//	output.ExitSystemError // 2: PDF backend or I/O failure
//	output.ExitConflict    // 3: output file already exists
//
// HTTPStatus maps the same classes to 400, 500 and 409 for the download
// server.
package output
