package config

import (
	"encoding/json"
	"os"

	"github.com/heirloomhq/heirloom/internal/flagx"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Fields are pointers so that only keys present in the
// file override the running defaults.
type JsonConfig struct {
	EndpointAddr *string `json:"endpoint_addr"`
	DatabaseDSN  *string `json:"database_dsn"`
	MasterSecret *string `json:"master_secret"`
	UsePostgres  *bool   `json:"use_postgres"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.MasterSecret != nil {
		config.MasterSecret = *c.MasterSecret
	}
	if c.UsePostgres != nil {
		config.UsePostgres = *c.UsePostgres
	}
}
