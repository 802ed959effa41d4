package analyzer

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cacheoverflow/rnbindgen/ast"
)

// binDir holds binary targets, which Cargo builds as separate crates.
const binDir = "bin"

// ModulePath derives the module path of a source file from its path
// relative to the crate's src directory. mod.rs stands for its parent
// directory; lib.rs and main.rs are the crate root only at the top level:
//
//	lib.rs           crate
//	geo/mod.rs       crate::geo
//	geo/shapes.rs    crate::geo::shapes
func ModulePath(rel string) ast.Path {
	rel = filepath.ToSlash(rel)
	dir, file := path.Split(rel)
	dir = strings.Trim(dir, "/")
	mod := ast.Path{ast.CrateRoot}
	for _, seg := range strings.Split(dir, "/") {
		mod = mod.Append(seg)
	}
	switch {
	case file == "mod.rs":
		return mod
	case dir == "" && (file == "lib.rs" || file == "main.rs"):
		return mod
	}
	return mod.Append(strings.TrimSuffix(file, path.Ext(file)))
}

// SourceFiles returns the .rs files below dir, sorted by path. The bin
// directory directly below dir is skipped.
func SourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == binDir && filepath.Dir(p) == filepath.Clean(dir) {
			log.Debugf("Skipping binary targets in %s", p)
			return filepath.SkipDir
		}
		if d.Type().IsRegular() && filepath.Ext(p) == ".rs" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
