package studio

import (
	"fmt"

	"visualpattern/internal/domain/blueprint"

	"github.com/spf13/viper"
)

// DefaultStyleRef names the built-in style profile
const DefaultStyleRef = "default"

// DefaultProfile is the style profile used when no file is given
func DefaultProfile() blueprint.Style {
	return blueprint.Style{
		blueprint.PrimaryColor: "BLUE",
		blueprint.ShapeStyle:   blueprint.ShapeStyleGeometric,
	}
}

// LoadStyle resolves a --style value. Anything other than the built-in
// name is read as a YAML or JSON file of flat style options.
func LoadStyle(ref string) (blueprint.Style, error) {
	if ref == "" || ref == DefaultStyleRef {
		return DefaultProfile(), nil
	}

	v := viper.New()
	v.SetConfigFile(ref)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read style profile %s: %w", ref, err)
	}

	style := make(blueprint.Style)
	for key, value := range v.AllSettings() {
		switch value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("style option %s in %s must be a scalar", key, ref)
		}
		style[key] = fmt.Sprint(value)
	}
	return style, nil
}
