// Package pages implements the simplate boundary-line grammar: splitting raw
// source text into ordered pages, normalizing logic versus template pages, and
// parsing speclines.
package pages
