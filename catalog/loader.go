package catalog

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/signalsfoundry/orrery/model"
)

// catalogFile is the on-disk shape read by LoadFile and Load.
type catalogFile struct {
	Bodies []model.Body `mapstructure:"bodies"`
}

// LoadFile reads a catalog from a JSON, YAML or TOML file. The format is
// taken from the file extension. The file must list every body, star
// included, under a top-level "bodies" key.
func LoadFile(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Load reads a catalog from r. format is a viper config type such as
// "json" or "yaml".
func Load(r io.Reader, format string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", format, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Catalog, error) {
	var f catalogFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode bodies: %w", err)
	}
	if len(f.Bodies) == 0 {
		return nil, fmt.Errorf("no bodies defined")
	}
	return New(f.Bodies...)
}
