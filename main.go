package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"blogfront/app/config"
	"blogfront/service"
)

// CliVersion is the version printed by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line and exits with the command's code.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	args := os.Args[2:]
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogfront version %s\n", CliVersion)
	case "serve":
		exit(service.RunAppServer(loadConfig(), args))
	case "store":
		service.Configure(loadConfig())
		exit(service.HandleStoreCommand(args))
	case "posts":
		exit(service.RunPostsCommand(loadConfig(), args))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(config.Options{ConfigFile: os.Getenv("BLOGFRONT_CONFIG")})
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		exit(1)
		return nil
	}
	return cfg
}

func printHelp() {
	helpText := `Usage: blogfront <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [--addr <addr>]          Run the blog front end web server.
  store <command>                Manage the settings store (init, clean, backup, restore, clients).
  posts [options]                List posts from the blog API (--base-url, --sort, --direction, --q, --page, --limit).

Configuration is read from BLOGFRONT_* environment variables, a .env file
and an optional blogfront.yaml (or the file named by BLOGFRONT_CONFIG).
`
	fmt.Println(helpText)
}
