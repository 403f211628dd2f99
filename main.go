package main

import "steam-ledger/cmd"

func main() {
	cmd.Execute()
}
