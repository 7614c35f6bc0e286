package main

import (
	"context"
	"log"
	"os"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/buildinfo"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/cli"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
