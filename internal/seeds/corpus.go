package seeds

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed data/corpus.yaml
var corpusYAML []byte

// Corpus holds the attribute vocabulary synthetic vehicles and geofences are
// drawn from.
type Corpus struct {
	Makes      map[string][]string `yaml:"makes"`
	Colors     []string            `yaml:"colors"`
	Fleets     []string            `yaml:"fleets"`
	FenceTypes []string            `yaml:"fence_types"`
	Tags       []string            `yaml:"tags"`
	Cities     []string            `yaml:"cities"`
	Adjectives []string            `yaml:"adjectives"`
}

// DefaultCorpus parses the embedded vocabulary file.
func DefaultCorpus() (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(corpusYAML, &c); err != nil {
		return nil, fmt.Errorf("parse seed corpus: %w", err)
	}
	if len(c.Makes) == 0 || len(c.Colors) == 0 || len(c.FenceTypes) == 0 {
		return nil, fmt.Errorf("seed corpus is incomplete")
	}
	return &c, nil
}
