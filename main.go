package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"firstblog/app/config"
	"firstblog/cli"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain parses os.Args and runs the requested command.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	command := strings.ToLower(os.Args[1])
	switch command {
	case "help", "-h", "--help":
		printHelp()
		exit(0)
	case "version", "--version":
		fmt.Printf("firstblog version %s\n", CliVersion)
		exit(0)
	case "serve", "init", "clean", "backup", "restore":
		exit(runCommand(command, os.Args[2:]))
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printHelp()
		exit(1)
	}
}

func runCommand(command string, args []string) int {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	configPath := fs.String("config", "", "path to the configuration file")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	cli.ConfigureLogging(cfg)

	return cli.NewRunner(cfg).Run(append([]string{command}, positional...))
}

// parseInterspersed parses flags wherever they appear among the positional
// arguments, which flag.Parse alone stops at.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func printHelp() {
	helpText := `Usage: firstblog <command> [options]

Commands:
  serve     Run the blog service
  init      Initialize a new empty badger database
  clean     Remove the badger database
  backup    Back up the badger database
  restore   Restore the badger database from a backup file
  version   Display version information
  help      Display this help message

Options:
  --config <file>   Configuration file (relaxed JSON); defaults apply when omitted

Examples:
  firstblog serve --config firstblog.conf
  firstblog backup
  firstblog restore --config firstblog.conf data/backups/backup_1700000000.db
`
	fmt.Println(helpText)
}
