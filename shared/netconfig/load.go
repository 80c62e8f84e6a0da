package netconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvRecvAddr    = "MATCHBOARD_RECV_ADDR"
	EnvSendAddr    = "MATCHBOARD_SEND_ADDR"
	EnvMatchLength = "MATCHBOARD_MATCH_LENGTH"
	EnvFeedAddr    = "MATCHBOARD_FEED_ADDR"
	EnvLogLevel    = "MATCHBOARD_LOG_LEVEL"
	EnvLogDev      = "MATCHBOARD_LOG_DEV"
	EnvQueueSize   = "MATCHBOARD_QUEUE_SIZE"
	EnvTickRate    = "MATCHBOARD_TICK_RATE"
)

// Load reads the given .env files (".env" when none are given) and overlays
// any MATCHBOARD_* variables onto the global configuration. Files that do not
// exist are skipped. Variables already set in the process environment win
// over values from files.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return applyEnv()
}

func applyEnv() error {
	lookupString(EnvRecvAddr, &Net.RecvAddr)
	lookupString(EnvSendAddr, &Net.SendAddr)
	lookupString(EnvFeedAddr, &Feed.Addr)
	lookupString(EnvLogLevel, &Log.Level)

	if err := lookupDuration(EnvMatchLength, &Match.Length); err != nil {
		return err
	}
	if Match.Length < 0 {
		return fmt.Errorf("%s: match length must not be negative, got %s", EnvMatchLength, Match.Length)
	}
	if err := lookupBool(EnvLogDev, &Log.Development); err != nil {
		return err
	}
	if err := lookupPositiveInt(EnvQueueSize, &Net.QueueSize); err != nil {
		return err
	}
	if err := lookupPositiveInt(EnvTickRate, &Server.TickRate); err != nil {
		return err
	}
	return nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func lookupBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func lookupPositiveInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	*dst = n
	return nil
}
