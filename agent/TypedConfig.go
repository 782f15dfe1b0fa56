package agent

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// TypedConfig implements functionality for typing a Config. In this
// way, a Config can explicitly have its type stored so that when
// deserializing the Config, it can be deserialized into its concrete
// type without declaring a variable of its concrete type beforehand.
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig types the argument Config and returns it as a
// TypedConfig which explicitly holds its Type
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ty, found := registeredTypes[raw.Type]
	if !found {
		return fmt.Errorf("unmarshalJSON: no such agent type %q", raw.Type)
	}

	value := reflect.New(ty)
	if len(raw.Config) > 0 {
		if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
			return err
		}
	}

	t.Type = raw.Type
	t.Config = value.Elem().Interface().(Config)
	return nil
}
