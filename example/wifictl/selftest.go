package main

import (
	"github.com/spf13/cobra"

	"github.com/LassiHeikkila/ISM43362/http"
	"github.com/LassiHeikkila/ISM43362/output"
	"github.com/LassiHeikkila/ISM43362/wifi"
)

const labelWidth = 9

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Identify the module, join the network and report addresses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := loadConfig()

		m, err := openModule(ctx, cfg)
		if err != nil {
			return err
		}
		defer m.Close()
		w := wifi.NewClient(m, log)

		fw, err := w.FirmwareVersion(ctx)
		if err != nil {
			return err
		}
		output.Println(output.Prefix, "firmware:", fw)

		mac, err := w.MACAddress(ctx)
		if err != nil {
			return err
		}
		output.Println(output.Prefix, "WiFi MAC address:", mac)

		if err := associate(ctx, w, cfg); err != nil {
			return err
		}

		st, err := w.Snapshot(ctx)
		if err != nil {
			return err
		}
		log.V(1).Info("Status", "raw", st.Raw)

		serverIP, err := w.LookupHost(ctx, cfg.Server)
		if err != nil {
			return err
		}
		publicIP, err := http.NewClient(m, http.Settings{Logger: log}).PublicIP(ctx)
		if err != nil {
			return err
		}

		output.Status(labelWidth, "IP ADDR", st.IP)
		output.Status(labelWidth, "NETMASK", st.Netmask)
		output.Status(labelWidth, "GW ADDR", st.Gateway)
		output.Status(labelWidth, "DNS1", st.DNS1)
		output.Status(labelWidth, "DNS2", st.DNS2)
		output.Status(labelWidth, "SERVER IP", serverIP)
		output.Status(labelWidth, "PUBLIC IP", publicIP)
		return nil
	},
}
