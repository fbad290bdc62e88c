package main

import (
	"fmt"

	_ "github.com/pokeproxy/go-cache/cache"
	_ "github.com/pokeproxy/go-cache/config"
	_ "github.com/pokeproxy/go-cache/logger"
)

func main() {
	fmt.Println("Hi")
}
