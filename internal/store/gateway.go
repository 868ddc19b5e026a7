package store

import (
	"encoding/json"
	"fmt"
)

// Key names one of the persisted records.
type Key string

const (
	KeyPlayers       Key = "players"
	KeySessions      Key = "sessions"
	KeyActiveSession Key = "activeSession"
)

// Backend is the raw string storage the gateway writes through.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Delete(key string) error
}

// Outcome reports what happened to a best-effort storage operation.
// Callers are free to ignore it; persistence is advisory.
type Outcome struct {
	Key Key
	Op  string
	// Fallback is set by Load when the caller's fallback was returned.
	Fallback bool
	Err      error
}

func (o Outcome) OK() bool { return o.Err == nil }

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s %s: %v", o.Op, o.Key, o.Err)
	}
	return fmt.Sprintf("%s %s: ok", o.Op, o.Key)
}

// Gateway stores JSON values under logical keys. Nothing it does is fatal:
// corrupt or missing values load as the fallback and write failures are
// only reported in the Outcome. Durability is not guaranteed.
type Gateway struct {
	backend Backend
}

func NewGateway(b Backend) *Gateway {
	return &Gateway{backend: b}
}

// Load decodes the value under key, or returns fallback when it is absent
// or cannot be decoded.
func Load[T any](g *Gateway, key Key, fallback T) (T, Outcome) {
	out := Outcome{Key: key, Op: "load"}
	raw, ok, err := g.backend.Get(string(key))
	if err != nil {
		out.Err, out.Fallback = err, true
		return fallback, out
	}
	if !ok {
		out.Fallback = true
		return fallback, out
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		out.Err, out.Fallback = fmt.Errorf("decode: %w", err), true
		return fallback, out
	}
	return v, out
}

// Save encodes value and stores it under key.
func (g *Gateway) Save(key Key, value any) Outcome {
	out := Outcome{Key: key, Op: "save"}
	data, err := json.Marshal(value)
	if err != nil {
		out.Err = fmt.Errorf("encode: %w", err)
		return out
	}
	out.Err = g.backend.Put(string(key), string(data))
	return out
}

// Clear removes the value under key.
func (g *Gateway) Clear(key Key) Outcome {
	return Outcome{Key: key, Op: "clear", Err: g.backend.Delete(string(key))}
}
