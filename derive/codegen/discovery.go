package codegen

import (
	"fmt"
	"go/build"
	"io/fs"
	"path/filepath"
	"strings"
)

// GeneratedSuffix ends the name of every file the generator writes.
const GeneratedSuffix = "_dhall_gen.go"

// DiscoverPackages finds the Go packages in dir, and in its
// subdirectories if recursive is set.
func DiscoverPackages(dir string, recursive bool) ([]*PackageInfo, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}

	var packages []*PackageInfo
	visited := make(map[string]bool)

	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != absDir && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
			return filepath.SkipDir
		}
		if !recursive && path != absDir {
			return filepath.SkipDir
		}

		pkg, err := build.ImportDir(path, 0)
		if err != nil {
			// not a Go package
			return nil
		}
		if len(pkg.GoFiles) == 0 || visited[pkg.Dir] {
			return nil
		}
		visited[pkg.Dir] = true

		files := make([]string, 0, len(pkg.GoFiles))
		for _, f := range pkg.GoFiles {
			if strings.HasSuffix(f, GeneratedSuffix) {
				continue
			}
			files = append(files, filepath.Join(path, f))
		}
		packages = append(packages, &PackageInfo{
			Path:  pkg.ImportPath,
			Dir:   path,
			Name:  pkg.Name,
			Files: files,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}
	return packages, nil
}

// DefaultOutputFile is where the code for pkg goes unless configured
// otherwise.
func DefaultOutputFile(pkg *PackageInfo) string {
	return filepath.Join(pkg.Dir, pkg.Name+GeneratedSuffix)
}
