// Package render turns a catalog model into prose documentation. The
// markdown renderer is a synchronous recursive walk over the topic tree
// producing an ordered slice of lines, followed by a single global
// emphasis pass over the RFC 2119 normative keywords. Rendering is a pure
// function of the model and cannot fail; the optional HTML wrapper only
// fails if markdown conversion does.
package render
