package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	log_level
//	display
//	headless
//	shutdown_timeout
//	exit_key
//	primary
//	primary.<field>
//	windows
//	windows.<tag>
//	windows.<tag>.<field>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "log_level", "display", "headless", "shutdown_timeout", "exit_key":
		if len(parts) != 1 {
			return nil, fmt.Errorf("%s has no sub-keys", parts[0])
		}
		switch parts[0] {
		case "log_level":
			return cfg.LogLevel, nil
		case "display":
			return cfg.Display, nil
		case "headless":
			return cfg.Headless, nil
		case "shutdown_timeout":
			return cfg.ShutdownTimeout.String(), nil
		default:
			return cfg.ExitKey, nil
		}

	case "primary":
		if len(parts) == 1 {
			return cfg.Primary, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unsupported path %q", path)
		}
		return windowField(cfg.Primary, parts[1])

	case "windows":
		if len(parts) == 1 {
			return cfg.Windows, nil
		}
		spec, ok := cfg.Window(parts[1])
		if !ok || parts[1] == "" {
			return nil, fmt.Errorf("window %q not found", parts[1])
		}
		if len(parts) == 2 {
			return spec, nil
		}
		if len(parts) != 3 {
			return nil, fmt.Errorf("unsupported path %q", path)
		}
		return windowField(spec, parts[2])
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}

func windowField(spec WindowSpec, field string) (any, error) {
	switch field {
	case "tag":
		return spec.Tag, nil
	case "title":
		return spec.Title, nil
	case "width":
		return spec.Width, nil
	case "height":
		return spec.Height, nil
	case "position":
		if spec.Position == nil {
			return "auto", nil
		}
		return *spec.Position, nil
	case "theme":
		return spec.Theme, nil
	case "icon":
		return spec.Icon, nil
	case "resizable":
		return spec.Resizable, nil
	}
	return nil, fmt.Errorf("unknown window field %q", field)
}
