package main

import (
	"context"
	"fmt"
	"os"

	"github.com/artworked/core/core/config"
	"github.com/artworked/core/core/shell"
	"github.com/artworked/core/deps"
	"github.com/artworked/core/jobs"
	"github.com/artworked/core/modules/api"
	"github.com/spf13/cobra"
)

func main() {
	// Run with the specified env file
	envfile := os.Getenv("ENV_FILE")
	if envfile == "" {
		envfile = "./config.json"
	}

	ignite := func() deps.Deps {
		c, err := config.Bootstrap(envfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		container, err := deps.Bootstrap(c)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return container
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Starts interactive shell",
		Long: `Starts artworked interactive shell
		with helper tasks.
        `,
		Run: func(cmd *cobra.Command, args []string) {
			container := ignite()
			defer container.Close()
			shell.RunShell()
		},
	}

	var cmdAPI = &cobra.Command{
		Use:   "api [addr]",
		Short: "Starts API web server",
		Long: `Starts API web server listening
        in the specified address (:3200 by default)
        `,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			port := ":3200"
			if len(args) == 1 {
				port = args[0]
			}

			container := ignite()
			defer container.Close()
			container.Config().WatchFile()
			api.New(container).Run(port)
		},
	}

	var cmdRecount = &cobra.Command{
		Use:   "recount",
		Short: "Recount post counters",
		Long: `Sets likes and comments counters of
        every post from their records
        `,
		Run: func(cmd *cobra.Command, args []string) {
			container := ignite()
			defer container.Close()
			jobs.RecountOnce(context.Background(), container)
		},
	}

	var rootCmd = &cobra.Command{Use: "artworked"}
	rootCmd.AddCommand(cmdAPI)
	rootCmd.AddCommand(cmdRecount)
	rootCmd.AddCommand(shellCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
