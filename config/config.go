// Package config loads Parser Limits from a YAML configuration file:
// strict field decoding via gopkg.in/yaml.v3, plain shapes in, a
// normalized typed result out.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/canidlogic/shastina"
)

// yamlLimits mirrors the on-disk shape; fields are optional and a zero
// value means "use the default" once normalized by Limits.Normalize.
type yamlLimits struct {
	MaxBlock int `yaml:"max_block"`
	MaxStack int `yaml:"max_stack"`
	MaxQueue int `yaml:"max_queue"`
}

// ParseLimitsConfig reads and decodes a YAML limits file. An empty path
// returns DefaultLimits with no error, so an unset --config flag is a
// no-op rather than a required argument.
func ParseLimitsConfig(path string) (shastina.Limits, error) {
	if path == "" {
		return shastina.DefaultLimits(), nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return shastina.Limits{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return parseLimitsFromBytes(buf)
}

// ParseLimitsConfigString decodes a YAML limits document already held in
// memory. An empty string returns DefaultLimits with no error.
func ParseLimitsConfigString(doc string) (shastina.Limits, error) {
	if doc == "" {
		return shastina.DefaultLimits(), nil
	}
	return parseLimitsFromBytes([]byte(doc))
}

func parseLimitsFromBytes(buf []byte) (shastina.Limits, error) {
	var y yamlLimits
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil && err != io.EOF {
		return shastina.Limits{}, fmt.Errorf("config: decoding limits: %w", err)
	}
	lim := shastina.Limits{
		MaxBlock: y.MaxBlock,
		MaxStack: y.MaxStack,
		MaxQueue: y.MaxQueue,
	}
	return lim.Normalize(), nil
}
