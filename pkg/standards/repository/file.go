package repository

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/parser"
)

// LoadDirectory parses every standards YAML file under dir (recursing
// into subdirectories, skipping hidden entries) and returns a memory
// repository holding the combined forest. Files combine by
// concatenation: nodes may reference parents declared in other files.
func LoadDirectory(dir string) (*MemoryRepository, error) {
	nodes, stds, err := parseDirectory(dir)
	if err != nil {
		return nil, err
	}
	repo := NewMemoryRepository()
	if err := repo.Replace(nodes, stds); err != nil {
		return nil, fmt.Errorf("standards directory %s: %w", dir, err)
	}
	return repo, nil
}

// Reload re-parses the directory into an existing repository, swapping
// the content atomically. On error the repository keeps its previous
// content, so a broken edit never takes down a running validator.
func Reload(repo *MemoryRepository, dir string) error {
	nodes, stds, err := parseDirectory(dir)
	if err != nil {
		return err
	}
	if err := repo.Replace(nodes, stds); err != nil {
		return fmt.Errorf("standards directory %s: %w", dir, err)
	}
	return nil
}

func parseDirectory(dir string) ([]*standards.StandardNode, []*standards.Standard, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan standards directory %s: %w", dir, err)
	}
	sort.Strings(files)

	// Cross-file parent and node references resolve only at the
	// directory level, so per-file reference validation is skipped and
	// the combined forest is validated in Replace.
	p := parser.NewParser()
	var nodes []*standards.StandardNode
	var stds []*standards.Standard
	for _, file := range files {
		doc, err := p.ParseLenient(file)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, doc.Nodes...)
		stds = append(stds, doc.Standards...)
	}
	return nodes, stds, nil
}
