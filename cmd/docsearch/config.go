package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLConfig resolves flag values from a YAML document. Keys are flag
// names; a mapping named after a command holds that command's flags:
//
//	index: public/search-data.json
//	build:
//	  root: src/app/docs/zh-CN
//	  base: /docs/zh-CN
//
// Dashes in flag names may be written as underscores.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		scope := values
		if parent != nil && parent.Command != nil {
			if nested, ok := values[parent.Command.Name].(map[string]any); ok {
				scope = nested
			}
		}
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if raw, ok := scope[key]; ok {
				return configValue(raw), nil
			}
		}
		return nil, nil
	}
	return f, nil
}

// configValue renders a YAML value in the form kong parses from the
// command line.
func configValue(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
