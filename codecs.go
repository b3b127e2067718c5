package rediscodec

import "github.com/AndrewDonelson/rediscodec/internal/codec"

// Re-export codec types so callers only import this package.
type (
	Codec     = codec.Codec
	MsgPack   = codec.MsgPack
	JSON      = codec.JSON
	Protobuf  = codec.Protobuf
	Encrypted = codec.Encrypted
	Encryptor = codec.Encryptor
)

// NewEncrypted returns inner sealed with AES-256-GCM; key must be 32 bytes.
func NewEncrypted(inner Codec, key []byte) (*Encrypted, error) {
	return codec.NewEncrypted(inner, key)
}

// CodecByName returns the built-in codec called name ("msgpack", "json" or
// "protobuf").
func CodecByName(name string) (Codec, bool) {
	return codec.ByName(name)
}
