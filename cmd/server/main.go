package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/tempo-service/cmd/server/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool            `help:"Enable debug mode."`
		Config  kong.ConfigFlag `help:"Load flag defaults from a YAML config file." env:"TEMPO_CONFIG"`
		Version kong.VersionFlag
		Server  commands.ServerCmd `cmd:"" help:"Start the tempo date API server"`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.Configuration(commands.YAML, "/etc/tempo-service/config.yaml"),
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
