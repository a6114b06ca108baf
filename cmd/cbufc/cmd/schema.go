package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/verdant-robotics/cbuf/internal/parser"
	"github.com/verdant-robotics/cbuf/internal/preprocess"
	"github.com/verdant-robotics/cbuf/internal/schema"
	"github.com/verdant-robotics/cbuf/internal/util/log"
)

// importDirective mirrors the pattern internal/preprocess matches against,
// since the CLI (not the library) owns all disk access and must discover
// every transitively-imported path before preprocess.Run can resolve them.
var importDirective = regexp.MustCompile(`(?m)^[ \t]*#import[ \t]+"([^"]*)"[ \t]*`) //nolint:gochecknoglobals

// loadSource reads path and every file it #imports, relative to path's own
// directory, and returns the fully spliced schema text ready for
// parser.Parse. Import resolution failures are not fatal here: they
// surface as a typed preprocess.ImportNotFoundError once preprocess.Run
// runs, which is what checkErr reports to the user.
func loadSource(ctx context.Context, path string) (string, error) {
	root, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	imports := make(map[string]string)
	collectImports(ctx, dir, string(root), imports, make(map[string]bool))
	return preprocess.Run(string(root), imports)
}

func collectImports(ctx context.Context, dir, text string, imports map[string]string, visited map[string]bool) {
	for _, match := range importDirective.FindAllStringSubmatch(text, -1) {
		importPath := match[1]
		if visited[importPath] {
			continue
		}
		visited[importPath] = true
		contents, err := os.ReadFile(filepath.Join(dir, importPath))
		if err != nil {
			log.Warnf(ctx, "unresolved import %q: %v", importPath, err)
			continue
		}
		imports[importPath] = string(contents)
		collectImports(ctx, dir, string(contents), imports, visited)
	}
}

// loadIndex reads, preprocesses, parses, and indexes the schema at path.
func loadIndex(ctx context.Context, path string) (*schema.Index, []*schema.Entity, error) {
	text, err := loadSource(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	entities, err := parser.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	index, err := schema.BuildIndex(entities)
	if err != nil {
		return nil, nil, err
	}
	return index, entities, nil
}
