package main

import (
	"log"

	"gigflow.io/ledger/config"
)

func main() {

	server, err := InitializeLedgerService()
	if err != nil {
		log.Fatal(err)
		return
	}

	if err = server.Run(config.ServerStartPort); err != nil {
		log.Fatal(err.Error())
	}

}
