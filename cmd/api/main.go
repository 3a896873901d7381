package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Cownect API
// @version 1.0
// @description Gestión de hato ganadero: registro de animales, marketplace, historial sanitario y estadísticas.
// @BasePath /
func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cownect",
		Short:         "API del hato ganadero (animales, marketplace, vacunas y estadísticas)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := serveCommand()
	root.AddCommand(serve, migrateCommand(), tokenCommand())

	// sin subcomando = serve
	root.RunE = serve.RunE
	return root
}
