package verify

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StepFile is the YAML document listing the steps to check.
//
//	steps:
//	  - prev: "x = y"
//	    next: "x + 5 = y + 5"
//	chains:
//	  - ["2x + 3x = 10", "5x = 10", "x = 2"]
type StepFile struct {
	Steps  []StepPair `yaml:"steps"`
	Chains [][]string `yaml:"chains"`
}

type StepPair struct {
	Prev string `yaml:"prev"`
	Next string `yaml:"next"`
}

// ParseStepFile decodes a step file. Chains shorter than two expressions are
// rejected.
func ParseStepFile(source []byte) (StepFile, error) {
	var file StepFile
	if err := yaml.Unmarshal(source, &file); err != nil {
		return file, err
	}
	for i, chain := range file.Chains {
		if len(chain) < 2 {
			return file, fmt.Errorf("chain %d: need at least two expressions, got %d", i, len(chain))
		}
	}
	if len(file.Steps) == 0 && len(file.Chains) == 0 {
		return file, errors.New("no steps or chains")
	}
	return file, nil
}

// Pairs flattens the file into the list of steps to check, steps first and
// then every consecutive pair of each chain.
func (f StepFile) Pairs() []StepPair {
	pairs := append([]StepPair(nil), f.Steps...)
	for _, chain := range f.Chains {
		for i := 1; i < len(chain); i++ {
			pairs = append(pairs, StepPair{Prev: chain[i-1], Next: chain[i]})
		}
	}
	return pairs
}
