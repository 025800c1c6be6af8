package config

import (
	"context"
	"fmt"
	"log"

	"github.com/valkey-io/valkey-go"
)

// InitValkey connects to Valkey and pings it so a bad address fails at startup.
func InitValkey(ctx context.Context, cfg *Config) (valkey.Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.Valkey.Address},
		Password:    cfg.Valkey.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping valkey: %w", err)
	}

	log.Println("✅ Valkey connected successfully")

	return client, nil
}
