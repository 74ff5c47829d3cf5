package zone

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasData []byte

var (
	aliasOnce sync.Once
	aliases   map[string]string
	aliasErr  error
)

func loadAliases() (map[string]string, error) {
	aliasOnce.Do(func() {
		aliases, aliasErr = parseAliases(aliasData)
	})
	return aliases, aliasErr
}

func parseAliases(data []byte) (map[string]string, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("zone: parse aliases: %w", err)
	}
	out := make(map[string]string, len(raw))
	for key, target := range raw {
		key = strings.TrimSpace(key)
		target = strings.TrimSpace(target)
		if key == "" || target == "" {
			continue
		}
		out[key] = target
	}
	return out, nil
}
