package main

import (
	"clockedin.io/infrastructure"
	"clockedin.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
