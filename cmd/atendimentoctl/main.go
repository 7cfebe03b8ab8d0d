// atendimentoctl drives the registration service from the terminal, playing
// the role of the registration form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultEndpoint = "http://localhost:3000"

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func execute() error {
	cmd := newRootCommand()
	return cmd.Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atendimentoctl",
		Short: "Interact with the fila de atendimento service",
	}
	cmd.PersistentFlags().StringP("endpoint", "e", defaultEndpoint, "endpoint of the atendimento service")
	cmd.AddCommand(
		newCadastrarCommand(),
		newImportarCommand(),
		newProcessarCommand(),
		newEstatisticasCommand(),
	)
	return cmd
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
