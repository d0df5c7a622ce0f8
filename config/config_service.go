package config

import "context"

type ConfigLoader interface {
	Load(ctx context.Context, selection Selection) (Config, error)
}
