package bindgen

import (
	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/codegen"
	"github.com/cacheoverflow/rnbindgen/resolve"
)

// React Native module plumbing referenced by bridge classes.
const (
	ModuleBase          = "com.facebook.react.bridge.ReactContextBaseJavaModule"
	ApplicationContext  = "com.facebook.react.bridge.ReactApplicationContext"
	Promise             = "com.facebook.react.bridge.Promise"
	ReactMethod         = "com.facebook.react.bridge.ReactMethod"
	promiseParamDefault = "promise"
)

// bridges emits one module class per class name used by exported
// functions. Functions are added in analysis order.
func (r *run) bridges() error {
	var order []string
	classes := make(map[string]*codegen.ClassBuilder)

	for _, p := range r.a.Projects {
		for _, f := range p.Files {
			for _, fn := range f.Functions {
				symbol := resolve.FunctionSymbol(p, f, fn)
				class, exported, err := r.exportClass(symbol, fn.Attributes)
				if err != nil {
					return err
				}
				if !exported {
					continue
				}
				if err := r.checkTypes(symbol); err != nil {
					return err
				}

				c, ok := classes[class]
				if !ok {
					c, err = r.newBridge(class)
					if err != nil {
						return err
					}
					classes[class] = c
					order = append(order, class)
				}
				if err := r.bridgeFunction(c, symbol, fn); err != nil {
					return err
				}
				log.Debugf("Bound %s to %s", symbol, c.Name())
			}
		}
	}

	for _, class := range order {
		if err := r.add(classes[class]); err != nil {
			return err
		}
	}
	log.Infof("Generated %d classes as wrappers for Rust functions", len(order))
	return nil
}

// newBridge opens the module class for class with its constructor and
// getName method.
func (r *run) newBridge(class string) (*codegen.ClassBuilder, error) {
	c := codegen.NewClass(codegen.Public|codegen.Final, class+r.cfg.ModuleSuffix, ModuleBase, nil)

	ctor, err := c.AddConstructor(codegen.Public, []codegen.Param{{Name: "context", Type: ApplicationContext}})
	if err != nil {
		return nil, err
	}
	ctor.AddStatement(codegen.Call{Func: "super", Args: codegen.Args(codegen.Var{Name: "context"})})
	if err := ctor.Build(); err != nil {
		return nil, err
	}

	name, err := c.AddMethod(codegen.Public, "getName", nil, "String")
	if err != nil {
		return nil, err
	}
	name.AddStatement(codegen.Return{Value: codegen.Value{V: codegen.SimpleName(class)}})
	if err := name.Build(); err != nil {
		return nil, err
	}
	return c, nil
}

// bridgeFunction adds the native declaration of fn and its promise based
// wrapper.
func (r *run) bridgeFunction(c *codegen.ClassBuilder, symbol string, fn *ast.Function) error {
	params := make([]codegen.Param, len(fn.Params))
	wrapperParams := make([]codegen.Param, 0, len(fn.Params)+1)
	args := make([]codegen.Expr, len(fn.Params))
	for i, prm := range fn.Params {
		target, err := r.mapType(symbol, prm.Type)
		if err != nil {
			return err
		}
		params[i] = codegen.Param{Name: prm.Name, Type: target}

		arg := codegen.Var{Name: prm.Name}
		if r.m.IsPrimitiveTarget(target) {
			wrapperParams = append(wrapperParams, params[i])
			args[i] = arg
			continue
		}
		wrapperParams = append(wrapperParams, codegen.Param{Name: prm.Name, Type: ReadableMap})
		args[i] = codegen.Call{Func: target + ".fromMap", Args: codegen.Args(arg)}
	}

	ret := ""
	if fn.HasReturn() {
		var err error
		if ret, err = r.mapType(symbol, fn.ReturnType); err != nil {
			return err
		}
	}

	native, err := c.AddMethod(codegen.Public|codegen.Static|codegen.Native, fn.Name, params, ret)
	if err != nil {
		return err
	}
	if err := native.Build(); err != nil {
		return err
	}

	promise := promiseName(fn.Params)
	wrapperParams = append(wrapperParams, codegen.Param{Name: promise, Type: Promise})
	w, err := c.AddMethod(codegen.Public, fn.Name, wrapperParams, "", ReactMethod)
	if err != nil {
		return err
	}

	call := codegen.Call{Func: codegen.SimpleName(c.Name()) + "." + fn.Name, Args: args}
	resolveFn := promise + ".resolve"
	if fn.HasReturn() {
		if !r.m.IsPrimitiveSource(fn.ReturnType) {
			call.Suffix = ".toMap()"
		}
		w.AddStatement(codegen.Call{Func: resolveFn, Args: codegen.Args(call)})
	} else {
		w.AddStatement(call)
		w.AddStatement(codegen.Call{Func: resolveFn, Args: codegen.Args(codegen.Value{})})
	}
	return w.Build()
}

// promiseName picks a name for the promise parameter that does not clash
// with the function's own parameters.
func promiseName(params ast.Params) string {
	name := promiseParamDefault
	for {
		if _, taken := params.Get(name); !taken {
			return name
		}
		name = "_" + name
	}
}
