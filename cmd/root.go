// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/luxfi/filesystem/perms"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/log/level"
	"github.com/luxfi/tge/cmd/bankcmd"
	"github.com/luxfi/tge/cmd/configcmd"
	"github.com/luxfi/tge/cmd/deploycmd"
	"github.com/luxfi/tge/cmd/distributioncmd"
	"github.com/luxfi/tge/cmd/metricscmd"
	"github.com/luxfi/tge/cmd/pretgecmd"
	"github.com/luxfi/tge/cmd/salecmd"
	"github.com/luxfi/tge/cmd/timecmd"
	"github.com/luxfi/tge/cmd/vestingcmd"
	"github.com/luxfi/tge/internal/migrations"
	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/config"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	app        *application.Lux
	logFactory luxlog.Factory

	logLevel string
	Version  = "1.1.0"
	cfgFile  string
	baseDir  string

	// user facing output, swapped in tests
	userWriter io.Writer = os.Stdout
)

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "tge",
		Long: `tge simulates a token generation event on a local chain.

It deploys a capped, pausable token, an owner curated pre-TGE ledger, a
whitelisted public sale and an allocation engine, then lets every account
contribute, choose vesting, settle and release vested tokens while the block
time is moved forward by hand. State is kept in the base dir between commands.

COMMAND OVERVIEW:

  deploy      Create a deployment from a yaml or json file
  pretge      Reserve and lock pre-TGE allocations
  sale        Contribute, change vesting, administer the public sale
  settle      Convert contributions into tokens
  vesting     Release and inspect vesting escrows
  time        Move the simulated block time
  metrics     Export the deployment to Prometheus

QUICK START:

  tge deploy --config tge.yaml
  tge time advance 1s
  tge sale contribute --from 0xC1 --vest 10
  tge time advance 6d
  tge pretge lock --from 0xOwner
  tge settle --all

For detailed command help, use: tge <command> --help`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "cli-config", "", "config file (default is $HOME/.tge/cli.json)")
	rootCmd.PersistentFlags().StringVar(&baseDir, constants.ConfigBaseDirKey, "", "directory holding state and logs (default is $HOME/.tge)")
	rootCmd.PersistentFlags().StringVar(&logLevel, constants.ConfigLogLevelKey, "", "log level for the application")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output (debug level logs)")

	rootCmd.AddCommand(deploycmd.NewCmd(app))
	rootCmd.AddCommand(deploycmd.NewOwnerCmd(app))
	rootCmd.AddCommand(pretgecmd.NewCmd(app))
	rootCmd.AddCommand(salecmd.NewCmd(app))
	// settle, mint, unpause, allocation
	rootCmd.AddCommand(distributioncmd.NewCmds(app)...)
	rootCmd.AddCommand(vestingcmd.NewCmd(app))
	rootCmd.AddCommand(timecmd.NewCmd(app))
	// fund, balance
	rootCmd.AddCommand(bankcmd.NewCmds(app)...)
	rootCmd.AddCommand(metricscmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app))

	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	dir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(dir)
	if err != nil {
		return err
	}
	app.Setup(dir, log, config.New())
	initConfig(dir)

	if logLevel == "" {
		logLevel = viper.GetString(constants.ConfigLogLevelKey)
	}
	// Adjust log level based on flags BEFORE any logging happens
	switch {
	case cmd.Flags().Changed("debug"):
		logFactory.SetLogLevel("tge", luxlog.Level(level.Debug))
		logFactory.SetDisplayLevel("tge", luxlog.Level(level.Debug))
	case cmd.Flags().Changed("verbose"):
		logFactory.SetLogLevel("tge", luxlog.Level(level.Info))
		logFactory.SetDisplayLevel("tge", luxlog.Level(level.Info))
	case logLevel != "":
		lvl, err := luxlog.ToLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logFactory.SetLogLevel("tge", lvl)
		logFactory.SetDisplayLevel("tge", lvl)
	}

	return migrations.RunMigrations(app)
}

// setupEnv resolves the base dir: flag, then TGE_BASE_DIR, then ~/.tge
func setupEnv() (string, error) {
	dir := baseDir
	if dir == "" {
		dir = os.Getenv(constants.EnvPrefix + "_BASE_DIR")
	}
	if dir == "" {
		usr, err := user.Current()
		if err != nil {
			// no logger here yet
			fmt.Printf("unable to get system user %s\n", err)
			return "", err
		}
		dir = filepath.Join(usr.HomeDir, constants.BaseDirName)
	}

	// Create base dir if it doesn't exist
	if err := os.MkdirAll(dir, perms.ReadWriteExecute); err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", dir, err)
		return "", err
	}
	return dir, nil
}

func setupLogging(dir string) (luxlog.Logger, error) {
	config := luxlog.Config{}
	config.LogLevel = luxlog.Level(level.Info)
	// quiet by default, flags raise the display level in createApp
	config.DisplayLevel, _ = luxlog.ToLevel("WARN")

	config.Directory = filepath.Join(dir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// Register ux package as internal so caller tracking shows actual source, not the wrapper
	luxlog.RegisterInternalPackages("github.com/luxfi/tge/pkg/ux")

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make("tge")
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	logFactory = factory
	// create the user facing logger as a global var
	ux.NewUserLog(log, userWriter)
	return log, nil
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig(dir string) {
	if cfgFile == "" {
		cfgFile = filepath.Join(dir, constants.DefaultConfigFileName+"."+constants.DefaultConfigFileType)
	}
	viper.SetConfigFile(cfgFile)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		app.Log.Debug("using config file", "config-file", viper.ConfigFileUsed())
	}
	// No config file is normal, config set creates it
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if ux.Logger != nil {
			ux.Logger.PrintError(err)
		} else {
			fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		}
		if logFactory != nil {
			logFactory.Close()
		}
		os.Exit(1)
	}
	if logFactory != nil {
		logFactory.Close()
	}
}
