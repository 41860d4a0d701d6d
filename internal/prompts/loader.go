// Package prompts holds the model prompt templates. Each embedded JSON file is a
// set of named templates with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	loadOnce sync.Once
	sets     map[string]map[string]string
	loadErr  error
)

// load parses every embedded file once
func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(files, "*.json")
		if err != nil {
			loadErr = err
			return
		}
		parsed := make(map[string]map[string]string, len(names))
		for _, name := range names {
			data, err := files.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", name, err)
				return
			}
			var set map[string]string
			if err := json.Unmarshal(data, &set); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
				return
			}
			parsed[name] = set
		}
		sets = parsed
	})
	return sets, loadErr
}

func set(file string) (map[string]string, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	s, ok := all[file]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", file)
	}
	return s, nil
}

// Get returns the template stored under key in file (e.g. "suggestions.json")
func Get(file, key string) (string, error) {
	s, err := set(file)
	if err != nil {
		return "", err
	}
	tmpl, ok := s[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return tmpl, nil
}

// MustGet is Get for templates that ship with the binary
func MustGet(file, key string) string {
	tmpl, err := Get(file, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format fills {{.Name}} placeholders from data. Unknown placeholders are left as is.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for name, value := range data {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Keys lists the template names in file, sorted
func Keys(file string) ([]string, error) {
	s, err := set(file)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
