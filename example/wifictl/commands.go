package main

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"

	"github.com/spf13/cobra"

	"github.com/LassiHeikkila/ISM43362/config"
	"github.com/LassiHeikkila/ISM43362/http"
	"github.com/LassiHeikkila/ISM43362/module"
	"github.com/LassiHeikkila/ISM43362/output"
	"github.com/LassiHeikkila/ISM43362/wifi"
)

// withNetwork opens the module, joins the network and hands both clients to
// fn.
func withNetwork(ctx context.Context, fn func(m module.Module, c *http.Client, cfg config.Config) error) error {
	cfg := loadConfig()
	m, err := openModule(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := associate(ctx, wifi.NewClient(m, log), cfg); err != nil {
		return err
	}
	return fn(m, http.NewClient(m, http.Settings{DefaultHost: cfg.Server, Logger: log}), cfg)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Join the network and print the raw and decoded status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withNetwork(ctx, func(m module.Module, _ *http.Client, _ config.Config) error {
			st, err := wifi.NewClient(m, log).Snapshot(ctx)
			if err != nil {
				return err
			}
			output.Status(labelWidth, "RAW", st.Raw)
			output.Status(labelWidth, "IP ADDR", st.IP)
			output.Status(labelWidth, "NETMASK", st.Netmask)
			output.Status(labelWidth, "GW ADDR", st.Gateway)
			output.Status(labelWidth, "DNS1", st.DNS1)
			output.Status(labelWidth, "DNS2", st.DNS2)
			return nil
		})
	},
}

var getPort int

var getCmd = &cobra.Command{
	Use:   "get [host] [path]",
	Short: "GET a path over HTTP/1.0 and print the body",
	Long:  "GET a path over HTTP/1.0 and print the body. The host defaults to SERVER, the path to /.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		req := http.Request{Port: getPort}
		if len(args) > 0 {
			req.Host = args[0]
		}
		if len(args) > 1 {
			req.Path = args[1]
		}
		return withNetwork(ctx, func(_ module.Module, c *http.Client, _ config.Config) error {
			body, err := c.Do(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		})
	},
}

var publicIPCmd = &cobra.Command{
	Use:   "publicip",
	Short: "Print the public address the module is seen from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withNetwork(ctx, func(_ module.Module, c *http.Client, _ config.Config) error {
			ip, err := c.PublicIP(ctx)
			if err != nil {
				return err
			}
			output.Status(labelWidth, "PUBLIC IP", ip)
			return nil
		})
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch URL",
	Short: "Fetch an http:// URL through net/http and print status, headers and body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withNetwork(ctx, func(_ module.Module, c *http.Client, _ config.Config) error {
			req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, args[0], nil)
			if err != nil {
				return err
			}
			hc := &nethttp.Client{Transport: http.NewTransport(c)}
			resp, err := hc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Proto, resp.Status)
			resp.Header.Write(out)
			fmt.Fprintln(out)
			_, err = io.Copy(out, resp.Body)
			return err
		})
	},
}

func init() {
	getCmd.Flags().IntVar(&getPort, "port", 80, "remote port")
}
