package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema:
// every section must be known to the schema and enum-restricted values must be allowed
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema struct {
		Ref  string                       `json:"$ref"`
		Defs map[string]*jsonschema.Schema `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}
	root, ok := schema.Defs["Config"]
	if !ok || root.Properties == nil {
		return fmt.Errorf("embedded schema has no Config definition")
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]json.RawMessage
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	keys := make([]string, 0, len(configMap))
	for k := range configMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, found := root.Properties.Get(k); !found {
			return fmt.Errorf("section %q is not in schema, regenerate schema.json", k)
		}
	}

	if err := checkEnum(schema.Defs, "DatabaseConfig", "driver", cfg.Database.Driver); err != nil {
		return err
	}
	if err := checkEnum(schema.Defs, "TransportConfig", "type", cfg.Transport.Type); err != nil {
		return err
	}
	for _, f := range cfg.Catalog.Feeds {
		if err := checkEnum(schema.Defs, "FeedConfig", "category", f.Category); err != nil {
			return err
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// checkEnum verifies value against the enum of a definition property, properties without enum accept anything
func checkEnum(defs map[string]*jsonschema.Schema, def, prop, value string) error {
	d, ok := defs[def]
	if !ok || d.Properties == nil {
		return fmt.Errorf("embedded schema has no %s definition", def)
	}
	p, ok := d.Properties.Get(prop)
	if !ok || len(p.Enum) == 0 {
		return nil
	}
	if !slices.Contains(p.Enum, any(value)) {
		return fmt.Errorf("%s.%s value %q not in %v", def, prop, value, p.Enum)
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Transport.Type == TransportHTTP && cfg.Transport.HTTP.StoreURL == "" {
		return fmt.Errorf("transport.http.store_url is required for http transport")
	}
	if cfg.Transport.Type == TransportKafka && cfg.Transport.Kafka.Topic == "" {
		return fmt.Errorf("transport.kafka.topic is required for kafka transport")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
