package main

import (
	"github.com/spf13/cobra"

	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/stack"
	"github.com/RunClawd/runclawd/pkg/system"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the gateway stack",
	Long: `Down stops and removes the stack's containers. The persistent
volume is left in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(false)
		if err != nil {
			return err
		}
		controller := stack.NewController(system.NewExecRunner(), cfg)
		return controller.Down(cmd.Context())
	},
}
