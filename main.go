package main

import (
	"fmt"
	"os"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/deploy"
	initcmd "github.com/WorldHealthOrganization/d2-portainer/cmd/init"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/login"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/logs"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/logout"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/ls"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/ps"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/redeploy"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/rm"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/share"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/start"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/stop"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/update"
	"github.com/WorldHealthOrganization/d2-portainer/cmd/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "d2pctl",
	Short: "DHIS2 instance manager - Deploy and manage DHIS2 instances via Portainer",
	Long: `d2pctl manages DHIS2 instances running as Docker Compose stacks behind a
Portainer server. It covers the whole lifecycle: logging in against an
endpoint, deploying and updating instances, controlling their containers
and sharing them with teams and users.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initcmd.InitCmd)
	rootCmd.AddCommand(login.LoginCmd)
	rootCmd.AddCommand(logout.LogoutCmd)
	rootCmd.AddCommand(ls.LsCmd)
	rootCmd.AddCommand(deploy.DeployCmd)
	rootCmd.AddCommand(update.UpdateCmd)
	rootCmd.AddCommand(redeploy.RedeployCmd)
	rootCmd.AddCommand(rm.RmCmd)
	rootCmd.AddCommand(ps.PsCmd)
	rootCmd.AddCommand(logs.LogsCmd)
	rootCmd.AddCommand(start.StartCmd)
	rootCmd.AddCommand(stop.StopCmd)
	rootCmd.AddCommand(share.ShareCmd)
	rootCmd.AddCommand(version.VersionCmd)
}
