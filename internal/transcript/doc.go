// Package transcript turns a raw terminal session log into (command, output) records.
//
// A transcript is the byte stream captured by `script` while a shell hook prints a
// "Shell log started." banner before every command. The stream is full of terminal
// noise: CSI color codes, OSC title updates, backspace-edited input, carriage returns.
// Parsing runs as a fixed pipeline over two index-aligned views of the same lines:
//
//	raw lines ──► CleanLine ──► clean lines
//	                               │
//	                         HookIndex (markers)
//	                               │
//	                         Segment (blocks between markers)
//	                               │
//	              Extractor (heuristic, then OSC title on the raw view)
//	                               │
//	                   FilterSelfInvocations ──► LastN
//
// The raw view is kept because OSC title payloads are stripped by the cleaner but
// are the most reliable source for the command text.
//
// If the per-line pass yields nothing, the parser retries on a whole-text cleaned
// copy with the heuristic extractor only.
package transcript
