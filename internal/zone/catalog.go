package zone

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var zonesYAML []byte

type catalogFile struct {
	US     []string `yaml:"us"`
	Global []string `yaml:"global"`
}

// Catalog returns the selectable zone names, US zones first.
func Catalog() ([]string, error) {
	var f catalogFile
	if err := yaml.Unmarshal(zonesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse zone catalog: %w", err)
	}
	names := make([]string, 0, len(f.US)+len(f.Global))
	names = append(names, f.US...)
	names = append(names, f.Global...)
	return names, nil
}

// Validate reports whether the zone database knows the given name.
func Validate(name string) error {
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return nil
}
