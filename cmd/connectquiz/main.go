package main

import (
	"log"

	"connectquiz/internal/app"

	"github.com/spf13/cobra"
)

const (
	releaseVersion = "0.1.0"
)

func main() {
	log.SetFlags(0)
	cfg := &options{cfg: app.DefaultConfig()}
	cobra.CheckErr(newCmd(cfg).Execute())
}
