package main

import "github.com/ledgerhub/go-bank-ledger/cmd/consumer/cmd"

func main() {
	cmd.Execute()
}
