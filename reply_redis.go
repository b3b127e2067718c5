package rediscodec

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ReplyFromResult converts the (value, error) pair of a generic go-redis
// command into a Reply.
//
// redis.Nil becomes Nil and a server error becomes ErrorReply; any other
// error is returned unchanged. go-redis hands back bulk and simple strings
// alike as string, so both map to Bulk here; use ReplyFromCmd with a typed
// command to keep Status distinct. RESP3-only shapes (maps, booleans,
// doubles, big numbers) have no rule and fail with UnsupportedVariant.
func ReplyFromResult(val any, err error) (Reply, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Nil{}, nil
		}
		var rerr redis.Error
		if errors.As(err, &rerr) {
			return ErrorReply(rerr.Error()), nil
		}
		return nil, err
	}
	return replyFromValue(val)
}

func replyFromValue(val any) (Reply, error) {
	switch v := val.(type) {
	case nil:
		return Nil{}, nil
	case string:
		return Bulk(v), nil
	case []byte:
		return Bulk(v), nil
	case int64:
		return Integer(v), nil
	case []any:
		arr := make(Array, len(v))
		for i, elem := range v {
			r, err := replyFromValue(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = r
		}
		return arr, nil
	case redis.Error:
		// Array elements (EXEC, pipelined scripts) may carry errors in place.
		if errors.Is(v, redis.Nil) {
			return Nil{}, nil
		}
		return ErrorReply(v.Error()), nil
	}
	return nil, unsupported(fmt.Sprintf("%T", val))
}

// ReplyFromCmd converts an executed go-redis command into a Reply, keeping
// the reply kind implied by the command's type.
func ReplyFromCmd(cmd redis.Cmder) (Reply, error) {
	if err := cmd.Err(); err != nil {
		return ReplyFromResult(nil, err)
	}
	switch c := cmd.(type) {
	case *redis.StringCmd:
		return Bulk(c.Val()), nil
	case *redis.StatusCmd:
		return Status(c.Val()), nil
	case *redis.IntCmd:
		return Integer(c.Val()), nil
	case *redis.StringSliceCmd:
		vals := c.Val()
		arr := make(Array, len(vals))
		for i, s := range vals {
			arr[i] = Bulk(s)
		}
		return arr, nil
	case *redis.SliceCmd:
		return replyFromValue(c.Val())
	case *redis.Cmd:
		return replyFromValue(c.Val())
	}
	return nil, unsupported(fmt.Sprintf("%T", cmd))
}
