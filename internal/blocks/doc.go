// Package blocks turns Markdown into the ordered block sequence the layout
// engine fits onto a page.
//
// Headings h1-h3 and paragraphs become typed blocks sized from the
// typography profile. Everything else (lists, code, quotes, tables, rules,
// deeper headings) becomes a passthrough block whose payload keeps enough
// structure for the HTML builder to render it. Passthrough blocks without
// text carry no size or margin of their own, so they follow the body size
// as the engine shrinks it.
package blocks
