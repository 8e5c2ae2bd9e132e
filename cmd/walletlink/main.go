package main

import (
	"log"

	"github.com/layer-3/walletlink/cmd/walletlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatalf("walletlink: %v", err)
	}
}
