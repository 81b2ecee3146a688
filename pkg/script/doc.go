// Package script compiles and executes the logic pages of a simplate as Risor
// programs: compile once at load time, run once per call with fresh state.
package script
