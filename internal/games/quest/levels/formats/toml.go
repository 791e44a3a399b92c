package formats

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML campaign file with the same keys as the YAML
// format ([[levels]], [[levels.platforms]], [levels.lore]).
func ParseTOML(data []byte) (Campaign, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Campaign{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Campaign{}, fmt.Errorf("toml decode: unknown keys %s", strings.Join(keys, ", "))
	}
	return f.toCampaign()
}
