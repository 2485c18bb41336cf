// Package seed loads page content from a YAML document.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

// Data is the whole seedable content of the site.
type Data struct {
	PrincipalMessage model.PrincipalMessage `yaml:"principal_message"`
	News             []model.NewsArticle    `yaml:"news"`
	Facilities       []model.Facility       `yaml:"facilities"`
}

// Default returns the built-in seed document.
func Default() (Data, error) {
	return Parse(bytes.NewReader(defaultYAML))
}

func LoadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (Data, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return Data{}, errors.New("seed: empty document")
		}
		return Data{}, fmt.Errorf("seed: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Data{}, err
	}
	return d, nil
}

func (d Data) Validate() error {
	if d.PrincipalMessage.Name == "" {
		return errors.New("seed: principal_message.name is required")
	}
	seen := map[uint64]bool{}
	for _, a := range d.News {
		if seen[a.ID] {
			return fmt.Errorf("seed: duplicate news id %d", a.ID)
		}
		seen[a.ID] = true
	}
	seen = map[uint64]bool{}
	for _, f := range d.Facilities {
		if seen[f.ID] {
			return fmt.Errorf("seed: duplicate facility id %d", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}
