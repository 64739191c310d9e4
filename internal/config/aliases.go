package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AliasesFile is the YAML document of extra column aliases, e.g.
//
//	aliases:
//	  account: [uid, client_id]
//	  closedPnL: [net_pnl]
//	  date: [exec_time]
type AliasesFile struct {
	Aliases map[string][]string `yaml:"aliases" validate:"dive,keys,oneof=account symbol closedPnL leverage size date,endkeys,dive,required"`
}

// LoadAliases reads alias overrides from a YAML file. An empty path yields no overrides.
func LoadAliases(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file: %w", err)
	}

	var file AliasesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse aliases file: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid aliases file: %w", err)
	}
	return file.Aliases, nil
}
