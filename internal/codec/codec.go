// Package codec holds the serializers a bridged value can be stored with.
// Each one turns a Go value into the bytes of a single Redis string and back.
package codec

// Codec is a serializer. It must be deterministic, and Unmarshal either fills
// the pointer it is given completely or returns an error.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name identifies the codec in errors and on the command line.
	Name() string
}

// Default is used when neither the caller nor the value type picks a codec.
var Default Codec = MsgPack{}

var builtin = map[string]Codec{}

func init() {
	for _, c := range []Codec{MsgPack{}, JSON{}, Protobuf{}} {
		builtin[c.Name()] = c
	}
}

// ByName looks up a built-in codec by its Name.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}
