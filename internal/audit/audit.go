// Package audit appends a best-effort record of every accepted mutation to
// Redis. It is strictly an audit trail, never a reload path: the demo
// service's in-memory index is never reconstructed from this log, so it
// does not reintroduce the persistence the core explicitly excludes (§5 /
// §10.5 of SPEC_FULL.md).
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	logKey    = "intervalidx:audit"
	maxLength = 10000
)

// Entry is one recorded mutation.
type Entry struct {
	Op        string    `json:"op"` // "insert" or "remove"
	Inf       string    `json:"inf"`
	Sup       string    `json:"sup"`
	InfClosed bool      `json:"inf_closed"`
	SupClosed bool      `json:"sup_closed"`
	At        time.Time `json:"at"`
}

// Trail appends Entry records to a capped Redis list. A nil *Trail (or one
// built with an empty address) is valid and silently no-ops, so the demo
// service can run with no Redis at all.
type Trail struct {
	client *redis.Client
	log    *zap.Logger
}

// New returns a Trail backed by addr, or a no-op Trail if addr is empty.
func New(addr string, log *zap.Logger) *Trail {
	log = log.Named("audit")
	if addr == "" {
		log.Info("audit trail disabled: no Redis address configured")
		return &Trail{log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("audit trail Redis unreachable at startup; will keep retrying lazily", zap.Error(err))
	} else {
		log.Info("audit trail connected", zap.String("addr", addr))
	}

	return &Trail{client: client, log: log}
}

// Record appends e to the audit log, logging (not failing the caller's
// request) on error — a dropped audit entry is never a reason to reject a
// mutation the index itself already committed.
func (t *Trail) Record(ctx context.Context, e Entry) {
	if t == nil || t.client == nil {
		return
	}
	raw, err := json.Marshal(e)
	if err != nil {
		t.log.Error("marshal audit entry", zap.Error(err))
		return
	}
	if err := t.push(ctx, raw); err != nil {
		t.log.Warn("append audit entry", zap.Error(err))
	}
}

func (t *Trail) push(ctx context.Context, raw []byte) error {
	pipe := t.client.TxPipeline()
	pipe.RPush(ctx, logKey, raw)
	pipe.LTrim(ctx, logKey, -maxLength, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rpush/ltrim: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection, if any.
func (t *Trail) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
