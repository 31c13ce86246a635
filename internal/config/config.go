// Package config holds project configuration: the vhdlang.yml project file
// mapping libraries to their source files, and source-file constants.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Version is the current vhdlang version. Set at build time via -ldflags.
var Version = "0.3.1"

// DefaultProjectFile is looked up in the working directory when no project
// file is given explicitly.
const DefaultProjectFile = "vhdlang.yml"

// DefaultLibrary is the library sources are analyzed into when no project
// file assigns them elsewhere.
const DefaultLibrary = "work"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".vhd", ".vhdl"}

// HasSourceExt returns true if the path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// Project is the parsed vhdlang.yml.
type Project struct {
	// Libraries maps a library name to its source description.
	Libraries map[string]Library `yaml:"libraries"`
}

// Library lists the source files of one design library. Files may contain
// globs.
type Library struct {
	Files []string `yaml:"files"`
}

// Load reads and parses a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &project, nil
}

// SourceFile is one source file and the library it is analyzed into.
type SourceFile struct {
	Library string
	Path    string
}

// SourceFiles expands the globs of every library relative to baseDir.
// The result is sorted by library, then path, for deterministic analysis
// order.
func (p *Project) SourceFiles(baseDir string) ([]SourceFile, error) {
	var files []SourceFile
	for library, lib := range p.Libraries {
		for _, pattern := range lib.Files {
			if !filepath.IsAbs(pattern) {
				pattern = filepath.Join(baseDir, pattern)
			}
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("library %s: bad pattern %q: %w", library, pattern, err)
			}
			for _, match := range matches {
				files = append(files, SourceFile{Library: library, Path: match})
			}
		}
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Library != files[j].Library {
			return files[i].Library < files[j].Library
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}
