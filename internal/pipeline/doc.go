// Package pipeline holds the text stages around the layout engine.
//
// Before fitting:
//   - Markdown preprocessing (line endings, spacing fixes, ==highlight==)
//   - Front matter extraction
//
// After fitting:
//   - Rendering fitted blocks to a standalone HTML document (BuildHTML)
//   - Code highlighting with chroma
//   - Relative image path rewriting
//
// Alongside, Previewer renders Markdown straight to HTML with goldmark for a
// quick look that skips fitting.
//
// PDF output is produced from the HTML by the root package's headless Chrome
// renderer.
package pipeline
