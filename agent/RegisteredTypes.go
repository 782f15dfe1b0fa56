package agent

import (
	"fmt"
	"reflect"
)

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig of that type can be deserialized into
// its concrete Config.
//
// No Types are registered with this package upon initialization. Each
// separate package registers its own Types to avoid circular imports.
var registeredTypes = make(map[Type]reflect.Type)

// Register registers an agent's Type with a concrete Config type so
// that upon deserialization of a TypedConfig, Configs of type agentType
// are deserialized into the concrete type of config.
func Register(agentType Type, config Config) {
	registeredTypes[agentType] = reflect.TypeOf(config)
}

// NewConfig returns the zero value of the concrete Config registered
// with agentType
func NewConfig(agentType Type) (Config, error) {
	ty, found := registeredTypes[agentType]
	if !found {
		return nil, fmt.Errorf("newConfig: no such agent type %q", agentType)
	}
	return reflect.New(ty).Elem().Interface().(Config), nil
}
