// Package app contains the core application logic: it wires the document
// loader and the two traversal engines (render, report) to an output
// writer, with an isolated logger per instance, decoupled from any
// specific entrypoint like a CLI.
package app
