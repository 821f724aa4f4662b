package main

import (
	"context"
	"flag"
	"os"

	platformcmd "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/cmd"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/config"
	contentimporter "github.com/nkzw-tech/athena-crisis-sub002/internal/tools/importer/content/catalog/v1"
)

func main() {
	cfg, err := contentimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := platformcmd.RunWithTelemetry(context.Background(), platformcmd.ServiceCatalogImporter, func(ctx context.Context) error {
		return contentimporter.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
