package main

import (
	"azure-staticwebapp-deployer/pkg/cli"
)

func main() {
	cli.Execute()
}
