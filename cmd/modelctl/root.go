// Copyright (c) 2019 Tigera, Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configHost string

var cmdExplain = &cobra.Command{
	Use:   "explain key [key ...]",
	Short: "Classify data model keys and show the fields they carry",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		explainKeys(os.Stdout, args)
	},
}

var cmdEndpoint = &cobra.Command{
	Use:   "endpoint hostname orchestrator workload endpoint",
	Short: "Show the keys of a workload endpoint",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		printEndpointKeys(os.Stdout, args[0], args[1], args[2], args[3])
	},
}

var cmdProfile = &cobra.Command{
	Use:   "profile profile-id",
	Short: "Show the keys of a security profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printProfileKeys(os.Stdout, args[0])
	},
}

var cmdHost = &cobra.Command{
	Use:   "host hostname",
	Short: "Show the keys and directories of a host",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printHostKeys(os.Stdout, args[0])
	},
}

var cmdConfig = &cobra.Command{
	Use:   "config name",
	Short: "Show the key of a config parameter, global or per-host",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printConfigKey(os.Stdout, args[0], configHost)
	},
}

var cmdPool = &cobra.Command{
	Use:   "pool cidr",
	Short: "Show the key and the address range of an IPv4 pool",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printPool(os.Stdout, args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var cmdResources = &cobra.Command{
	Use:   "resources",
	Short: "List the resource kinds of the v1 data model",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		printResources(os.Stdout)
	},
}

func init() {
	cmdConfig.Flags().StringVar(&configHost, "host", "",
		"show the per-host override key of the given host instead of the global key")
}

// Execute runs the modelctl command tree.
func Execute() {
	rootCmd := &cobra.Command{Use: "modelctl"}
	rootCmd.AddCommand(cmdExplain)
	rootCmd.AddCommand(cmdEndpoint)
	rootCmd.AddCommand(cmdProfile)
	rootCmd.AddCommand(cmdHost)
	rootCmd.AddCommand(cmdConfig)
	rootCmd.AddCommand(cmdPool)
	rootCmd.AddCommand(cmdResources)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
