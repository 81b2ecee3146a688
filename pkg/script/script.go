package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/builtins"
	"github.com/risor-io/risor/compiler"
	"github.com/risor-io/risor/object"
	"github.com/risor-io/risor/parser"

	"github.com/goliatone/go-simplate/pkg/render"
)

const (
	// ContextName is the global under which a logic page sees its execution
	// environment. The compiler needs a fixed global-name set, so per-call
	// bindings travel inside this one map rather than as individual globals.
	ContextName = "ctx"

	// OutputName is the reserved global carrying the per-call Output. Pages
	// compiled with WithOutput may call output.SetBody(...) to bypass
	// template rendering.
	OutputName = "output"
)

// Program is a compiled logic page. The underlying bytecode is immutable, so
// one Program safely serves concurrent executions, each with fresh state.
type Program struct {
	code       *compiler.Code
	path       string
	withOutput bool
}

// Option configures compilation of a Program.
type Option func(*Program)

// WithOutput exposes the reserved output binding to the compiled page. Only
// the run-every page gets one; the run-once page executes before any request
// exists.
func WithOutput() Option {
	return func(p *Program) {
		p.withOutput = true
	}
}

// Compile parses and compiles a logic page once. content is padded with
// lineOffset blank lines so error positions match the original source file.
// The page sees the standard script builtins plus the reserved globals.
func Compile(path, content string, lineOffset int, opts ...Option) (*Program, error) {
	p := &Program{path: path}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	padded := content
	if lineOffset > 0 {
		padded = strings.Repeat("\n", lineOffset) + content
	}

	ast, err := parser.Parse(context.Background(), padded)
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	code, err := compiler.Compile(ast, compiler.WithGlobalNames(p.globalNames()))
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	p.code = code
	return p, nil
}

// Eval executes the program against env and returns the result converted to
// its native Go value. Errors from page code propagate unchanged.
func (p *Program) Eval(ctx context.Context, env map[string]any, out *render.Output) (any, error) {
	if p.withOutput && out == nil {
		return nil, fmt.Errorf("script: %s compiled with an output binding but none supplied", p.path)
	}

	var proxy *object.Proxy
	if p.withOutput {
		var err error
		proxy, err = object.NewProxy(out)
		if err != nil {
			return nil, fmt.Errorf("script: wrap output: %w", err)
		}
	}

	result, err := risor.EvalCode(ctx, p.code, risor.WithGlobals(p.globals(env, proxy)))
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.Interface(), nil
}

// Exec executes the program and interprets its result as exported bindings: a
// map result is returned as-is, any other result exports nothing. Pages
// communicate with the engine only through their result value; top-level
// assignments stay internal to the page.
func (p *Program) Exec(ctx context.Context, env map[string]any, out *render.Output) (map[string]any, error) {
	result, err := p.Eval(ctx, env, out)
	if err != nil {
		return nil, err
	}
	if bindings, ok := result.(map[string]any); ok {
		return bindings, nil
	}
	return map[string]any{}, nil
}

// globalNames returns the name set baked into the compiled code. It must
// cover every global the page may reference.
func (p *Program) globalNames() []string {
	b := builtins.Builtins()
	names := make([]string, 0, len(b)+2)
	for name := range b {
		names = append(names, name)
	}
	names = append(names, ContextName)
	if p.withOutput {
		names = append(names, OutputName)
	}
	return names
}

// globals builds the per-execution globals map matching globalNames.
func (p *Program) globals(env map[string]any, out *object.Proxy) map[string]any {
	g := make(map[string]any, len(p.code.GlobalNames())+2)
	for name, builtin := range builtins.Builtins() {
		g[name] = builtin
	}
	if env == nil {
		env = map[string]any{}
	}
	g[ContextName] = env
	if p.withOutput {
		g[OutputName] = out
	}
	return g
}
