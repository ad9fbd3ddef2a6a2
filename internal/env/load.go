package env

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Parse reads a .env file into a map. Lines are KEY=VALUE with optional surrounding quotes
// and an optional "export " prefix; empty lines and # comments are skipped. A missing file
// yields an empty map and no error.
func Parse(path string) (map[string]string, error) {
	vars := make(map[string]string)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vars, nil
		}
		return nil, fmt.Errorf("env: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	return vars, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// Load parses path and sets each variable that is not already present in the process
// environment, so real environment values win over the file.
func Load(path string) error {
	vars, err := Parse(path)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("env: %w", err)
		}
	}
	return nil
}
