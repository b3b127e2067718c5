package rediscodec_test

import (
	"testing"

	"github.com/AndrewDonelson/rediscodec"
	"github.com/stretchr/testify/assert"
)

func TestReply_Kinds(t *testing.T) {
	cases := []struct {
		r    rediscodec.Reply
		kind rediscodec.Kind
		name string
	}{
		{rediscodec.Nil{}, rediscodec.KindNil, "nil"},
		{rediscodec.Integer(1), rediscodec.KindInteger, "integer"},
		{rediscodec.Bulk("x"), rediscodec.KindBulk, "bulk"},
		{rediscodec.Status("OK"), rediscodec.KindStatus, "status"},
		{rediscodec.Array{}, rediscodec.KindArray, "array"},
		{rediscodec.ErrorReply("ERR"), rediscodec.KindError, "error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.r.Kind())
		assert.Equal(t, tc.name, tc.kind.String())
	}
	assert.Equal(t, "Kind(99)", rediscodec.Kind(99).String())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "nil", rediscodec.Describe(rediscodec.Nil{}))
	assert.Equal(t, "integer(-3)", rediscodec.Describe(rediscodec.Integer(-3)))
	assert.Equal(t, "bulk(5 bytes)", rediscodec.Describe(rediscodec.Bulk("hello")))
	assert.Equal(t, `status("PONG")`, rediscodec.Describe(rediscodec.Status("PONG")))
	assert.Equal(t, "array(len=2)", rediscodec.Describe(rediscodec.Array{rediscodec.Nil{}, rediscodec.Integer(1)}))
	assert.Equal(t, `error("ERR x")`, rediscodec.Describe(rediscodec.ErrorReply("ERR x")))
	assert.Equal(t, "<none>", rediscodec.Describe(nil))
}
