package main

import "github.com/isdelr/birthdaybot-be/internal/cli"

func main() {
	cli.Execute()
}
