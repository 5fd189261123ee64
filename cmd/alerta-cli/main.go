// Alerta CLI — инструмент командной строки для управления движком
// напоминаний через HTTP API.
//
// Использование:
//
//	alerta [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	pass        Запуск пассов сверки
//	alert       Очередь алертов и действия по ним
//	permission  Разрешение на показ алертов
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Alerta/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "alerta",
		Short:         "Alerta CLI — reminder alert engine tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewPassCmd(clientFn, outputFn),
		cli.NewAlertCmd(clientFn, outputFn),
		cli.NewPermissionCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
