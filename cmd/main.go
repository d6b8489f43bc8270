/*
Copyright 2025 Kora Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/korafinance/kora"
	"github.com/korafinance/kora/config"
	"github.com/korafinance/kora/database"
)

// Kora represents the CLI application, encapsulating the root Cobra command.
type Kora struct {
	cmd *cobra.Command
}

// koraInstance holds the Kora instance and its configuration, shared by the
// subcommands once preRun has executed.
type koraInstance struct {
	kora *kora.Kora
	cnf  *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the Kora instance before running any command.
func preRun(app *koraInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("kora.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newKora, err := setupKora(cnf)
		if err != nil {
			log.Fatal(err)
		}

		app.kora = newKora
		app.cnf = cnf

		return nil
	}
}

// setupKora creates and initializes a new Kora instance based on the provided configuration.
func setupKora(cfg *config.Configuration) (*kora.Kora, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "error getting datasource")
	}

	newKora, err := kora.NewKora(db)
	if err != nil {
		return nil, errors.Wrap(err, "error creating kora")
	}
	return newKora, nil
}

// NewCLI creates the command-line interface (CLI) for the Kora application.
func NewCLI() *Kora {
	var configFile string
	k := &koraInstance{}

	var rootCmd = &cobra.Command{
		Use:   "kora",
		Short: "Banking record-keeper",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./kora.json", "Configuration file for kora")

	rootCmd.PersistentPreRunE = preRun(k)

	rootCmd.AddCommand(serverCommands(k))
	rootCmd.AddCommand(migrateCommands(k))

	return &Kora{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w Kora) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
