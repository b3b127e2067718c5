// Package cli implements the rediscodec command line tool: reading, writing
// and inspecting bridged values in a live Redis.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AndrewDonelson/rediscodec"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override flags,
// e.g. REDISCODEC_ADDR.
const EnvPrefix = "REDISCODEC"

type app struct {
	v      *viper.Viper
	logger *log.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "rediscodec",
		Short:         "Read and write typed values stored in Redis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	f := root.PersistentFlags()
	f.String("config", "", "config file (toml, yaml or json)")
	f.String("addr", "127.0.0.1:6379", "Redis address")
	f.String("password", "", "Redis password")
	f.Int("db", 0, "Redis database")
	f.String("codec", "msgpack", "value codec: msgpack or json")
	f.Bool("debug", false, "enable debug logging")
	_ = a.v.BindPFlags(f)

	root.AddCommand(a.getCommand(), a.setCommand(), a.inspectCommand(), versionCommand())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "rediscodec"})
	if a.v.GetBool("debug") {
		a.logger.SetLevel(log.DebugLevel)
	}
	return nil
}

func (a *app) client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     a.v.GetString("addr"),
		Password: a.v.GetString("password"),
		DB:       a.v.GetInt("db"),
	})
}

func (a *app) bridge() (*rediscodec.Bridge[any], error) {
	name := a.v.GetString("codec")
	if name != "msgpack" && name != "json" {
		return nil, fmt.Errorf("codec %q cannot carry untyped values (use msgpack or json)", name)
	}
	c, _ := rediscodec.CodecByName(name)
	return rediscodec.New[any](rediscodec.WithCodec(c)), nil
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Decode the value at key and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bridge()
			if err != nil {
				return err
			}
			rdb := a.client()
			defer rdb.Close()

			key := args[0]
			v, err := b.FromCmd(rdb.Get(cmd.Context(), key))
			if err != nil {
				if rediscodec.IsNil(err) {
					return fmt.Errorf("key %q not found", key)
				}
				return err
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return fmt.Errorf("render %q as JSON: %w", key, err)
			}
			a.logger.Debug("decoded value", "key", key, "codec", b.Codec().Name())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func (a *app) setCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <json>",
		Short: "Encode a JSON value with the codec and store it at key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bridge()
			if err != nil {
				return err
			}
			var v any
			if err := json.Unmarshal([]byte(args[1]), &v); err != nil {
				return fmt.Errorf("invalid JSON value: %w", err)
			}
			payload, err := b.ToStoreArgs(v)
			if err != nil {
				return err
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")

			key := args[0]
			cmdArgs := append([]any{"set", key}, payload...)
			if ttl > 0 {
				cmdArgs = append(cmdArgs, "px", max(ttl.Milliseconds(), 1))
			}
			rdb := a.client()
			defer rdb.Close()
			if err := rdb.Do(cmd.Context(), cmdArgs...).Err(); err != nil {
				return fmt.Errorf("set %q: %w", key, err)
			}
			a.logger.Debug("stored value", "key", key, "bytes", len(payload[0].([]byte)), "ttl", ttl)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return err
		},
	}
	cmd.Flags().Duration("ttl", 0, "expiry (0 keeps the key until deleted)")
	return cmd
}

func (a *app) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <key>",
		Short: "Show the reply kind at key and whether it decodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bridge()
			if err != nil {
				return err
			}
			rdb := a.client()
			defer rdb.Close()

			r, err := rediscodec.ReplyFromCmd(rdb.Get(cmd.Context(), args[0]))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "kind:   %s\n", r.Kind())
			fmt.Fprintf(w, "reply:  %s\n", rediscodec.Describe(r))
			if _, err := b.FromStoreValue(r); err != nil {
				cat, _ := rediscodec.CategoryOf(err)
				fmt.Fprintf(w, "decode: %s (%v)\n", cat, err)
				return nil
			}
			fmt.Fprintf(w, "decode: ok (%s)\n", b.Codec().Name())
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), rediscodec.Version())
		},
	}
}
