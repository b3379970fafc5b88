// Package render writes a journal.Collection in each supported output
// format.
//
// # Formats
//
// Formats are produced in a fixed Sequence:
//
//   - html: a styled page, bodies rendered by goldmark
//   - md: bodies copied verbatim under "## Date:" headers
//   - txt: bodies with Markdown markers removed
//   - tex: an article with title page and table of contents
//   - docx: a Word document
//   - pdf: the Word document converted by LibreOffice or docx2pdf
//   - epub: an e-book with one chapter per top-level heading
//
// # File Naming
//
// Output files are named after the input and the run date:
//
//	output_Journal.json_2024-05-01.html
//
// # Unavailable Backends
//
// A renderer whose external backend is missing returns an error wrapping
// ErrUnavailable. Classify reports such errors as Skipped so the remaining
// formats are still produced.
package render
