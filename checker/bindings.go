package checker

import (
	"github.com/thiremani/typelang/ast"
	"github.com/thiremani/typelang/types"
)

// declared reconciles a written type with the type found for the value.
// The written type wins when the two are compatible.
func (c *Checker) declared(form string, b *ast.Binding, decl, got types.Type) types.Type {
	if types.IsError(decl) || types.IsError(got) {
		return absorb(decl, got)
	}
	if types.Compatible(decl, got) {
		return decl
	}
	if df, ok := decl.(types.Func); ok {
		if gf, ok := got.(types.Func); ok && len(df.Params) == len(gf.Params) && types.Compatible(types.Func{Params: df.Params, Return: gf.Return}, gf) {
			return c.mismatch(b.Value, "%s %s: declared return type %s, body has type %s", form, b.Name, df.Return, gf.Return)
		}
	}
	return c.mismatch(b.Value, "%s %s: declared %s, got %s", form, b.Name, decl, got)
}

// checkLet is parallel: every value is checked under the outer env, then
// the body sees all the names at once.
func (c *Checker) checkLet(e *ast.LetExp, env *TypeEnv) types.Type {
	names := make([]string, len(e.Bindings))
	bound := make([]types.Type, len(e.Bindings))
	var result types.Type = types.UnitT

	for i, b := range e.Bindings {
		t := c.Check(b.Value, env)
		if b.Type != nil {
			t = c.declared("let binding", b, c.annotation(b.Name, b.Type), t)
		}
		names[i] = b.Name.Name
		bound[i] = t
		result = absorb(result, t)
	}

	body := c.Check(e.Body, env.ExtendAll(names, bound))
	if types.IsError(result) {
		return result
	}
	return body
}

// checkLetrec binds every name to its declared type before any value is
// checked, so bindings may refer to themselves and to each other.
func (c *Checker) checkLetrec(e *ast.LetrecExp, env *TypeEnv) types.Type {
	names := make([]string, len(e.Bindings))
	decls := make([]types.Type, len(e.Bindings))
	var result types.Type = types.UnitT

	for i, b := range e.Bindings {
		names[i] = b.Name.Name
		decls[i] = c.annotation(b.Name, b.Type)
		result = absorb(result, decls[i])
	}

	inner := env.ExtendAll(names, decls)
	for i, b := range e.Bindings {
		t := c.Check(b.Value, inner)
		result = absorb(result, c.declared("letrec binding", b, decls[i], t))
	}

	body := c.Check(e.Body, inner)
	if types.IsError(result) {
		return result
	}
	return body
}

// CheckDecl checks a top-level definition under env and returns the type
// bound to its name together with the extended environment. A definition
// with a written type is recursive: the name is in scope for its value.
func (c *Checker) CheckDecl(d *ast.DefineDecl, env *TypeEnv) (types.Type, *TypeEnv) {
	if d.Type == nil {
		t := c.Check(d.Value, env)
		return t, env.Extend(d.Name.Name, t)
	}

	decl := c.annotation(d.Name, d.Type)
	inner := env.Extend(d.Name.Name, decl)
	t := c.Check(d.Value, inner)
	b := &ast.Binding{Name: d.Name, Type: d.Type, Value: d.Value}
	return c.declared("define", b, decl, t), inner
}
