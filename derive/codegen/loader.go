package codegen

import (
	"fmt"
	"go/types"
	"sync"

	"golang.org/x/tools/go/packages"
)

// PackageLoader loads and caches type checked Go packages.
type PackageLoader struct {
	cache map[string]*packages.Package
	mu    sync.RWMutex
}

func NewPackageLoader() *PackageLoader {
	return &PackageLoader{
		cache: make(map[string]*packages.Package),
	}
}

// LoadDir loads the package in dir.
func (l *PackageLoader) LoadDir(dir string) (*packages.Package, error) {
	l.mu.RLock()
	if pkg, ok := l.cache[dir]; ok {
		l.mu.RUnlock()
		return pkg, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if pkg, ok := l.cache[dir]; ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps | packages.NeedTypes,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package in %q", dir)
	}
	pkg := pkgs[0]
	if pkg.Types == nil {
		return nil, fmt.Errorf("package in %q has no type information", dir)
	}
	// Type errors are tolerated: the previous generated file may be
	// stale, and only declarations are looked up.
	l.cache[dir] = pkg
	return pkg, nil
}

// Underlying resolves the named type name, declared in pkg or in the
// package it imports as path, to its underlying type.
func Underlying(pkg *types.Package, path, name string) (types.Type, error) {
	scope := pkg.Scope()
	if path != "" && path != pkg.Path() {
		scope = nil
		for _, imp := range pkg.Imports() {
			if imp.Path() == path {
				scope = imp.Scope()
				break
			}
		}
		if scope == nil {
			return nil, fmt.Errorf("package %q is not imported by %q", path, pkg.Path())
		}
	}
	obj := scope.Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %q not found", name)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%q is not a type name", name)
	}
	return tn.Type().Underlying(), nil
}
