// Package simplate compiles and renders simplates: dynamic resources whose
// single source file mixes executable logic with one or more output
// templates, separated by boundary lines of the form `[---]` (three or more
// dashes), each optionally carrying a specline `media_type via renderer`.
//
// A normalized simplate always has a run-once page (executed at load time,
// its exported bindings frozen and shared by every call), a run-every page
// (compiled at load time, executed fresh per call), and zero or more template
// pages, one per media type. Logic pages are Risor scripts that receive their
// environment as the `ctx` map and export bindings by evaluating to a map;
// the run-every page additionally receives `output` and may set the response
// body directly, skipping template rendering.
//
//	{"greeting": "Hello"}
//	[---]
//	{"name": ctx["name"]}
//	[---] text/plain
//	%(greeting)s, %(name)s!
//
// Compile once with New, then call Render once per request; a Simplate is
// immutable after construction and safe for concurrent renders.
package simplate
