package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mitchellh/cli"

	"github.com/sqlite-riir/sqlite-riir/cmd/sqlite-riir/command"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = append(args, "shell")
	}

	commands := map[string]cli.CommandFactory{
		"shell": func() (cli.Command, error) {
			return &command.ShellCommand{
				ShutDownCh: makeShutdownCh(),
			}, nil
		},
	}

	shellCLI := &cli.CLI{
		Args:     args,
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("sqlite-riir"),
	}

	exitCode, err := shellCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}

func makeShutdownCh() <-chan struct{} {
	resultCh := make(chan struct{})

	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, os.Interrupt)
	go func() {
		for {
			<-signalCh
			resultCh <- struct{}{}
		}
	}()

	return resultCh
}
