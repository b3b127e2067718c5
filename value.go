package rediscodec

// Value carries a T through go-redis as a single binary value. It implements
// encoding.BinaryMarshaler, so it can be passed directly as a command
// argument, and encoding.BinaryUnmarshaler, so a reply can be scanned into it:
//
//	err := rdb.Set(ctx, "user:1", rediscodec.Of(u), 0).Err()
//
//	var got rediscodec.Value[User]
//	err = rediscodec.Translate(rdb.Get(ctx, "user:1").Scan(&got))
//
// The codec is chosen as by New[T] without options.
type Value[T any] struct {
	V T
}

// Of wraps v.
func Of[T any](v T) Value[T] {
	return Value[T]{V: v}
}

// MarshalBinary encodes the wrapped value.
func (v Value[T]) MarshalBinary() ([]byte, error) {
	return New[T]().Encode(v.V)
}

// UnmarshalBinary decodes data into v. On failure v is left unchanged.
func (v *Value[T]) UnmarshalBinary(data []byte) error {
	out, err := New[T]().Decode(data)
	if err != nil {
		return err
	}
	v.V = out
	return nil
}
