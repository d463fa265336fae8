// Command ledgerctl runs maintenance tasks against a ledger database.
package main

import "github.com/SscSPs/pocket_ledger/cmd/ledgerctl/commands"

func main() {
	commands.Execute()
}
