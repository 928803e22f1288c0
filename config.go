// Copyright © 2021-2025 The Gomon Project.

package main

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/zosmac/gocore"
	"gopkg.in/yaml.v3"
)

// applyConfig sets the flags named by the keys of a YAML document. A flag given on the
// command line keeps its value.
func applyConfig(fs *flag.FlagSet, data []byte) error {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return gocore.Error("config", err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	for _, name := range slices.Sorted(maps.Keys(config)) {
		if set[name] {
			continue
		}
		if fs.Lookup(name) == nil {
			return gocore.Error("config", errors.New("unknown flag"), map[string]string{
				"flag": name,
			})
		}
		value, err := configValue(config[name])
		if err != nil {
			return gocore.Error("config", err, map[string]string{
				"flag": name,
			})
		}
		if err := fs.Set(name, value); err != nil {
			return gocore.Error("config", err, map[string]string{
				"flag":  name,
				"value": value,
			})
		}
	}

	return nil
}

// configValue formats a YAML value as a flag would be written on the command line.
// A sequence becomes a comma-separated list.
func configValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case []any:
		list := make([]string, len(v))
		for i, elem := range v {
			s, err := configValue(elem)
			if err != nil {
				return "", err
			}
			list[i] = s
		}
		return strings.Join(list, ","), nil
	case map[string]any:
		return "", errors.New("mapping is not a flag value")
	}
	return fmt.Sprint(v), nil
}
