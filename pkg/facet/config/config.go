package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
	"github.com/facetlabs/facet/pkg/facet/taxonomy"
)

// Params is the tunable configuration surface of the analysis pipeline.
// Zero values mean "use the default".
type Params struct {
	SignalLimit            int     `yaml:"signal_limit"`            // top-N word stats retained
	NoiseFloor             int     `yaml:"noise_floor"`             // minimum raw count for a candidate
	PMIThreshold           float64 `yaml:"pmi_threshold"`           // minimum PMI for a bigram collocation
	BatchSize              int     `yaml:"batch_size"`              // reviews per progress checkpoint
	PositiveThreshold      float64 `yaml:"positive_threshold"`      // compound score floor for "positive"
	NegativeThreshold      float64 `yaml:"negative_threshold"`      // compound score ceiling for "negative"
	ClampLimit             float64 `yaml:"clamp_limit"`             // magnitude clamp absent an intensifier
	CoverageSaturation     int     `yaml:"coverage_saturation"`     // reviews at which confidence coverage maxes out
	DiversitySaturation    int     `yaml:"diversity_saturation"`    // trigger keywords at which diversity maxes out
	RepetitionThreshold    float64 `yaml:"repetition_threshold"`    // duplicate-share warning threshold
	ConcentrationThreshold float64 `yaml:"concentration_threshold"` // score-mass warning threshold
}

// DefaultParams returns the canonical defaults.
func DefaultParams() Params {
	return Params{
		SignalLimit:            40,
		NoiseFloor:             3,
		PMIThreshold:           2.0,
		BatchSize:              500,
		PositiveThreshold:      0.05,
		NegativeThreshold:      -0.05,
		ClampLimit:             0.85,
		CoverageSaturation:     50,
		DiversitySaturation:    3,
		RepetitionThreshold:    0.3,
		ConcentrationThreshold: 0.6,
	}
}

// Normalized fills zero-valued fields from DefaultParams.
func (p Params) Normalized() Params {
	def := DefaultParams()
	if p.SignalLimit <= 0 {
		p.SignalLimit = def.SignalLimit
	}
	if p.NoiseFloor <= 0 {
		p.NoiseFloor = def.NoiseFloor
	}
	if p.PMIThreshold <= 0 {
		p.PMIThreshold = def.PMIThreshold
	}
	if p.BatchSize <= 0 {
		p.BatchSize = def.BatchSize
	}
	if p.PositiveThreshold <= 0 {
		p.PositiveThreshold = def.PositiveThreshold
	}
	if p.NegativeThreshold >= 0 {
		p.NegativeThreshold = def.NegativeThreshold
	}
	if p.ClampLimit <= 0 {
		p.ClampLimit = def.ClampLimit
	}
	if p.CoverageSaturation <= 0 {
		p.CoverageSaturation = def.CoverageSaturation
	}
	if p.DiversitySaturation <= 0 {
		p.DiversitySaturation = def.DiversitySaturation
	}
	if p.RepetitionThreshold <= 0 {
		p.RepetitionThreshold = def.RepetitionThreshold
	}
	if p.ConcentrationThreshold <= 0 {
		p.ConcentrationThreshold = def.ConcentrationThreshold
	}
	return p
}

// LoadParams loads pipeline parameters from a YAML file, filling any
// omitted fields with defaults.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}
	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return p.Normalized(), nil
}

// Stoplist is the stop-word list configuration.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stop-words from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return &sl, nil
}

// taxonomyFile is the on-disk shape of a taxonomy document.
type taxonomyFile struct {
	Aspects []taxonomy.Aspect `yaml:"aspects"`
}

// LoadTaxonomy loads and validates an aspect taxonomy from a YAML file.
func LoadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return taxonomy.New(tf.Aspects)
}
