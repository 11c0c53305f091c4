// Package mdview reads Markdown files and renders them as ANSI text for
// terminal display.
//
// Parsing and styling are delegated to glamour; this package adds the
// pieces around it: a scoped, BOM-tolerant file reader, a pure render
// step that produces a Document, and an output step that either pages
// the Document through an external pager or writes it directly.
//
// Core properties:
//   - One read of the input per Document
//   - Rendering never queries the terminal; callers pass width and color profile
//   - Pager configuration is scoped to the pager process
//
// Example:
//
//	text, err := mdview.ReadSource("README.md")
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := mdview.Render(text, mdview.WithWidth(80))
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = mdview.Display(context.Background(), mdview.DisplayRequest{
//		Document:    doc,
//		Writer:      os.Stdout,
//		Interactive: mdview.IsTerminal(os.Stdout),
//		Pager:       mdview.NewExecPager([]string{"less"}),
//	})
package mdview
