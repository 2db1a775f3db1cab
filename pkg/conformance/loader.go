package conformance

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests walks dir and loads every case of every .yaml/.yml suite,
// ordered by file path.
func LoadAllTests(dir string) ([]LoadedTest, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("conformance: walk %s: %w", dir, err)
	}
	sort.Strings(files)

	var loaded []LoadedTest
	for _, path := range files {
		tests, err := loadTestFile(path)
		if err != nil {
			return nil, err
		}
		relPath, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			relPath = path
		}
		for _, test := range tests {
			test.File = filepath.ToSlash(relPath)
			loaded = append(loaded, test)
		}
	}
	return loaded, nil
}

// loadTestFile parses a single YAML file and returns all test cases
func loadTestFile(path string) ([]LoadedTest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("conformance: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var suite TestSuite
	if err := decoder.Decode(&suite); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("conformance: %s is empty", path)
		}
		return nil, fmt.Errorf("conformance: parse %s: %w", path, err)
	}
	if suite.Name == "" {
		suite.Name = filepath.Base(path)
	}

	tests := make([]LoadedTest, 0, len(suite.Tests))
	for i, test := range suite.Tests {
		if test.Name == "" {
			return nil, fmt.Errorf("conformance: %s: tests[%d] has no name", path, i)
		}
		tests = append(tests, LoadedTest{
			File:  path,
			Suite: suite,
			Test:  test,
		})
	}
	return tests, nil
}
