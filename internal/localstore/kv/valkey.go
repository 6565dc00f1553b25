package kv

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/valkey-io/valkey-go"
)

// Valkey keeps values on a Valkey or Redis server so several instances share them.
type Valkey struct {
	client valkey.Client
}

// NewValkey connects to uri (redis:// or rediss:// with optional credentials).
func NewValkey(uri string) (*Valkey, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	username := ""
	password := ""
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	options := valkey.ClientOption{
		InitAddress: []string{u.Host},
		Username:    username,
		Password:    password,
	}
	if u.Scheme == "rediss" {
		options.TLSConfig = &tls.Config{ServerName: u.Hostname()}
	}

	client, err := valkey.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("connect valkey %s: %w", u.Host, err)
	}
	return &Valkey{client: client}, nil
}

func (v *Valkey) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := v.client.Do(ctx, v.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return b, nil
}

func (v *Valkey) Set(ctx context.Context, key string, value []byte) error {
	err := v.client.Do(ctx, v.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()).Error()
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Do(ctx, v.client.B().Del().Key(key).Build()).Error(); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (v *Valkey) Close() error {
	v.client.Close()
	return nil
}
