package main

import (
	"github.com/sayedpfe/tenantctl/cmd"
)

func main() {
	cmd.Execute()
}
