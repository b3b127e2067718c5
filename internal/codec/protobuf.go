package codec

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"
)

// Protobuf encodes generated protobuf messages in the binary wire format.
//
// Unmarshal accepts either a non-nil message or a pointer to a message
// variable; in the latter case a fresh message is allocated so that a
// generic caller can decode into the zero value of a message pointer type.
type Protobuf struct{}

// Marshal serializes a proto.Message.
func (Protobuf) Marshal(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, errNotProtobuf(v)
	}
	return proto.Marshal(m)
}

// Unmarshal deserializes data into a proto.Message.
func (Protobuf) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok && !reflect.ValueOf(v).IsNil() {
		return proto.Unmarshal(data, m)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errNotProtobuf(v)
	}
	elem := rv.Elem()
	m, ok := elem.Interface().(proto.Message)
	if !ok {
		return errNotProtobuf(v)
	}
	fresh := m.ProtoReflect().Type().New().Interface()
	if err := proto.Unmarshal(data, fresh); err != nil {
		return err
	}
	elem.Set(reflect.ValueOf(fresh))
	return nil
}

// Name returns "protobuf".
func (Protobuf) Name() string { return "protobuf" }

func errNotProtobuf(v any) error {
	return fmt.Errorf("%T doesn't implement proto.Message", v)
}
