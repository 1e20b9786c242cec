/*
registry.go - Type name registration and lookup

PURPOSE:
  Maps type names (DATE, TIMES, ...) to parsers, so serialization adapters
  and the HTTP surface can turn a name plus a literal into a Value without
  knowing the concrete Go type.

HOW IT WORKS:
  1. The built-in types register themselves in init()
  2. Other packages may register additional types the same way
  3. Callers look a type up by name and parse with it

USAGE:
  info, ok := datatype.LookupType("DATE")
  if !ok {
      return fmt.Errorf("unknown type")
  }
  v, err := info.ParseIso("2011-12-31")

SEE ALSO:
  - api/handlers.go: Conversion endpoint built on the registry
*/
package datatype

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/MichalStehlikCz/common-sub000/sentinel"
)

// Value is the read, format contract shared by every datatype.
type Value interface {
	Kind() sentinel.Kind
	String() string
	ToIso() string
	ToProvysValue() string
}

// TypeInfo describes a registered type.
type TypeInfo struct {
	Name        string
	ParseIso    func(text string) (Value, error)
	ParseProvys func(text string) (Value, error)
}

// =============================================================================
// TYPE REGISTRY
// =============================================================================

var (
	typeRegistry = make(map[string]TypeInfo)
	registryMu   sync.RWMutex
)

// RegisterType adds or replaces a type. Names are case-insensitive.
func RegisterType(info TypeInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	typeRegistry[strings.ToUpper(info.Name)] = info
}

// LookupType finds a registered type by name.
func LookupType(name string) (TypeInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := typeRegistry[strings.ToUpper(name)]
	return info, ok
}

// MustLookupType finds a registered type or panics.
// Use in tests or when you're certain the type exists.
func MustLookupType(name string) TypeInfo {
	info, ok := LookupType(name)
	if !ok {
		panic(fmt.Sprintf("datatype not registered: %s", name))
	}
	return info
}

// ListTypes returns the registered type names in alphabetical order.
func ListTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(typeRegistry))
	for name := range typeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// BUILT-IN TYPES
// =============================================================================

func init() {
	RegisterType(TypeInfo{Name: "DATE", ParseIso: asValue(ParseIsoDate), ParseProvys: asValue(DateOfProvysValue)})
	RegisterType(TypeInfo{Name: "TIMES", ParseIso: asValue(ParseIsoTimeS), ParseProvys: asValue(TimeSOfProvysValue)})
	RegisterType(TypeInfo{Name: "DATETIME", ParseIso: asValue(ParseIsoDateTime), ParseProvys: asValue(DateTimeOfProvysValue)})
	RegisterType(TypeInfo{Name: "INTEGER", ParseIso: asValue(ParseInteger), ParseProvys: asValue(ParseInteger)})
	RegisterType(TypeInfo{Name: "DOUBLE", ParseIso: asValue(ParseDouble), ParseProvys: asValue(ParseDouble)})
	RegisterType(TypeInfo{Name: "NUMBER", ParseIso: asValue(ParseNumber), ParseProvys: asValue(ParseNumber)})
	RegisterType(TypeInfo{Name: "UID", ParseIso: asValue(ParseUid), ParseProvys: asValue(ParseUid)})
	varchar := func(text string) (Value, error) { return VarcharOf(text), nil }
	RegisterType(TypeInfo{Name: "VARCHAR", ParseIso: varchar, ParseProvys: varchar})
}

func asValue[T Value](parse func(string) (T, error)) func(string) (Value, error) {
	return func(text string) (Value, error) {
		v, err := parse(text)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
