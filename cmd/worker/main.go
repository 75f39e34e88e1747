package main

import "bitbucket.org/fintechpsp/go-psp-reconciliation/cmd/worker/cmd"

func main() {
	cmd.Execute()
}
