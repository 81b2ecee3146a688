// Package render defines the renderer contract shared by every template page
// backend: the Renderer and Factory types, the factory registry with its
// load-failure placeholders, the per-call Output value and the render error
// taxonomy.
package render
