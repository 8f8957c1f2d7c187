package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"data_dir": "~/.zend",
		"storage": map[string]interface{}{
			"backend": BackendFile,
		},
		"notifications": map[string]interface{}{
			"enabled": true,
			"desktop": true,
			"sound":   true,
			"buffer":  64,
		},
		"log": map[string]interface{}{
			"level": "info",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func DefaultConfigPath() string {
	return "~/.zend/config.yaml"
}
