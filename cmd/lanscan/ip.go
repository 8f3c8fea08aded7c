package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/user/lanscan/internal/iprange"
	"github.com/user/lanscan/internal/probes"
)

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Show the local address and the auto scan range",
	RunE:  runIP,
}

func init() {
	ipCmd.Flags().StringVarP(&scanIface, "interface", "i", "",
		"Use the address of this network interface")
}

func runIP(cmd *cobra.Command, args []string) error {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Width(14)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true)

	iface := cfg.Interface
	if scanIface != "" {
		iface = scanIface
	}

	local, err := probes.NewLocalResolver(iface).Resolve()
	if err != nil {
		return err
	}
	r := iprange.Auto(local)

	fmt.Println(labelStyle.Render("Address:") + valueStyle.Render(local.String()))
	fmt.Println(labelStyle.Render("Auto range:") + valueStyle.Render(r.String()))
	fmt.Println(labelStyle.Render("Addresses:") + valueStyle.Render(fmt.Sprintf("%d", r.Count())))
	return nil
}
