// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package env maps environment variables and an optional config file onto
// command flags that were not set on the command line.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type cmdFlags interface {
	CheckEnvironmentVariables(command *cobra.Command, configFile string) error
}

type cmdFlagsImpl struct{}

var (
	CmdFlags           cmdFlags = cmdFlagsImpl{}
	errorMessagePrefix          = "error mapping environment variables to command flags"
)

const (
	globalPrefix   = "wktbench"
	configFileFlag = "config-file"
)

// CheckEnvironmentVariables fills every unchanged flag of command from, in
// order of precedence, WKTBENCH_* environment variables and the keys of
// configFile. Subcommands use WKTBENCH_<NAME>_* variables. An empty
// configFile falls back to the environment value of a config-file flag, if
// the command has one.
func (cf cmdFlagsImpl) CheckEnvironmentVariables(command *cobra.Command, configFile string) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	if !command.HasParent() {
		v.SetEnvPrefix(globalPrefix)
	} else {
		v.SetEnvPrefix(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
	}
	if configFile == "" && command.Flags().Lookup(configFileFlag) != nil {
		configFile = v.GetString(strings.ReplaceAll(configFileFlag, "-", "_"))
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%s: %w", errorMessagePrefix, err)
		}
	}
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		configName := strings.ReplaceAll(f.Name, "-", "_")
		key := ""
		switch {
		case v.IsSet(configName):
			key = configName
		case v.IsSet(f.Name):
			key = f.Name
		default:
			return
		}
		if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); err != nil {
			errs = append(errs, err.Error())
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
