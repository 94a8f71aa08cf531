package main

import (
	"fmt"
	"sort"
	"strings"
)

// pairsFlag collects repeated KEY=VALUE flags. The value is taken verbatim
// after the first "=", so it may contain commas.
type pairsFlag map[string]string

func (f pairsFlag) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + f[k]
	}
	return strings.Join(parts, ",")
}

func (f pairsFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("want KEY=VALUE, got %q", value)
	}
	f[key] = strings.TrimSpace(val)
	return nil
}

// countFlag collects drawer counts. A single value may hold a
// comma-separated list: -count 20=5,0.25=8.
type countFlag pairsFlag

func (f countFlag) String() string { return pairsFlag(f).String() }

func (f countFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if err := pairsFlag(f).Set(part); err != nil {
			return err
		}
	}
	return nil
}
