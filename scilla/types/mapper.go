package types

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
)

const (
	// ScillaImport is the import path of the package providing the codecs.
	ScillaImport = "go.dedis.ch/zilliqa/scilla"

	bigImport     = "math/big"
	uint256Import = "github.com/holiman/uint256"
)

// Native describes the Go representation of a Scilla type.
type Native struct {
	// Scilla is the canonical Scilla type name.
	Scilla string
	// Type is the Go type expression.
	Type string
	// Codec is a Go expression of type scilla.Codec[Type].
	Codec string
	// Imports is the sorted list of packages the expressions depend on.
	Imports []string
	// Raw is true when at least a part of the type is kept as an untyped wire
	// value because the type is not supported.
	Raw bool
}

// Mapper maps Scilla type descriptors to native descriptors. Unsupported or
// malformed descriptors never fail: they are mapped to scilla.Raw and the event
// is logged.
type Mapper struct {
	logger zerolog.Logger
}

// MapperOption is the type of option to configure a mapper.
type MapperOption func(*Mapper)

// WithLogger sets the logger used to report the fallbacks.
func WithLogger(logger zerolog.Logger) MapperOption {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// NewMapper creates a new mapper.
func NewMapper(opts ...MapperOption) Mapper {
	m := Mapper{
		logger: zilliqa.Logger.With().Str("component", "types").Logger(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Map returns the native descriptor of the Scilla type descriptor.
func (m Mapper) Map(desc string) Native {
	t, err := Parse(desc)
	if err != nil {
		m.logger.Warn().Err(err).Str("type", desc).Msg("malformed type, using raw value")

		return rawNative(desc)
	}

	return m.MapType(t)
}

// MapType returns the native descriptor of a parsed type.
func (m Mapper) MapType(t *Type) Native {
	imports := map[string]struct{}{ScillaImport: {}}

	n := m.mapType(t, imports)

	n.Imports = make([]string, 0, len(imports))
	for imp := range imports {
		n.Imports = append(n.Imports, imp)
	}

	sort.Strings(n.Imports)

	return n
}

func (m Mapper) mapType(t *Type, imports map[string]struct{}) Native {
	switch t.Kind {
	case Int32, Int64, Uint32, Uint64:
		return simple(t, strings.ToLower(t.Name), t.Name)
	case Int128, Int256:
		imports[bigImport] = struct{}{}
		return simple(t, "*big.Int", t.Name)
	case Uint128, Uint256:
		imports[uint256Import] = struct{}{}
		return simple(t, "uint256.Int", t.Name)
	case String:
		return simple(t, "string", "String")
	case BNum:
		return simple(t, "scilla.BlockNumber", "BNum")
	case Bool:
		return simple(t, "bool", "Bool")
	case ByStr20:
		return simple(t, "scilla.Address", "ByStr20")
	case ByStr:
		return Native{
			Scilla: t.String(),
			Type:   "string",
			Codec:  "scilla.ByStr(" + strconv.Itoa(t.Size) + ")",
		}
	case Option:
		elem := m.mapType(t.Args[0], imports)

		return Native{
			Scilla: t.String(),
			Type:   "scilla.Option[" + elem.Type + "]",
			Codec:  "scilla.OptionOf(" + elem.Codec + ")",
			Raw:    elem.Raw,
		}
	case List:
		elem := m.mapType(t.Args[0], imports)

		return Native{
			Scilla: t.String(),
			Type:   "[]" + elem.Type,
			Codec:  "scilla.ListOf(" + elem.Codec + ")",
			Raw:    elem.Raw,
		}
	case Pair:
		first := m.mapType(t.Args[0], imports)
		second := m.mapType(t.Args[1], imports)

		return Native{
			Scilla: t.String(),
			Type:   "scilla.Pair[" + first.Type + ", " + second.Type + "]",
			Codec:  "scilla.PairOf(" + first.Codec + ", " + second.Codec + ")",
			Raw:    first.Raw || second.Raw,
		}
	case Map:
		return m.mapMap(t, imports)
	default:
		m.logger.Warn().Str("type", t.String()).Msg("unsupported type, using raw value")

		return rawNative(t.String())
	}
}

func (m Mapper) mapMap(t *Type, imports map[string]struct{}) Native {
	if !t.Args[0].IsPrimitive() {
		m.logger.Warn().Str("type", t.String()).Msg("unsupported map key, using raw value")

		return rawNative(t.String())
	}

	key := m.mapType(t.Args[0], imports)
	value := m.mapType(t.Args[1], imports)

	if key.Type == "*big.Int" {
		key.Type = "string"
		key.Codec = "scilla.TextKey(" + key.Codec + ")"
	}

	return Native{
		Scilla: t.String(),
		Type:   "map[" + key.Type + "]" + value.Type,
		Codec:  "scilla.MapOf(" + key.Codec + ", " + value.Codec + ")",
		Raw:    value.Raw,
	}
}

func simple(t *Type, goType, codec string) Native {
	return Native{
		Scilla: t.String(),
		Type:   goType,
		Codec:  "scilla." + codec,
	}
}

func rawNative(name string) Native {
	return Native{
		Scilla:  name,
		Type:    "scilla.Raw",
		Codec:   "scilla.RawOf(" + strconv.Quote(name) + ")",
		Imports: []string{ScillaImport},
		Raw:     true,
	}
}
