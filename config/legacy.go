package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"
)

// Legacy holds the settings of a ~/.cweather file:
//
//	[cweather]
//	location = -37.8136,144.9631
//	interval = 300
type Legacy struct {
	Location string
	Interval int
}

// LoadLegacy reads a legacy dotfile. A missing file yields the zero Legacy.
func LoadLegacy(path string) (Legacy, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Legacy{}, nil
	}

	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Legacy{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ParseLegacy(p), nil
}

// ParseLegacy extracts the known keys. The section header parses as a key
// without value and is ignored.
func ParseLegacy(p *properties.Properties) Legacy {
	return Legacy{
		Location: p.GetString("location", ""),
		Interval: p.GetInt("interval", 0),
	}
}

// Apply registers the legacy values as defaults, below every other source
func (l Legacy) Apply(v *viper.Viper) {
	if l.Location != "" {
		v.SetDefault(PathLocation, l.Location)
	}
	if l.Interval != 0 {
		v.SetDefault(PathInterval, l.Interval)
	}
}
