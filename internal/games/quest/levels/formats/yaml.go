package formats

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML campaign file. Unknown keys are rejected so
// typos in hand-written layouts surface at load time.
func ParseYAML(data []byte) (Campaign, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Campaign{}, fmt.Errorf("yaml decode: %w", err)
	}
	return f.toCampaign()
}
