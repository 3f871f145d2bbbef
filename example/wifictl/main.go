// Command wifictl drives an ISM43362 WiFi module: it runs the module self
// test, reports the connection status and performs plain HTTP requests
// through the module's TCP client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/LassiHeikkila/ISM43362/config"
	"github.com/LassiHeikkila/ISM43362/logging"
	"github.com/LassiHeikkila/ISM43362/output"
)

var Commit string

var (
	v        = config.NewViper()
	log      = logr.Discard()
	closeLog = func() error { return nil }

	opts struct {
		configFile   string
		verbosity    int
		logFile      string
		emulate      bool
		bridge       string
		baud         int
		spiPort      string
		csPin        string
		drdyPin      string
		resetPin     string
		readyTimeout time.Duration
		settle       time.Duration
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "wifictl",
	Short:         "Talk to an ISM43362 WiFi module",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output.SetWriter(cmd.OutOrStdout())
		log, closeLog = logging.New(logging.Options{Verbosity: opts.verbosity, File: opts.logFile})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", config.DefaultFile, "configuration file of KEY=VALUE lines")
	pf.String("ssid", "", "access point SSID (overrides "+config.KeySSID+")")
	pf.String("password", "", "access point passphrase (overrides "+config.KeyPassword+")")
	pf.String("security", "", "Open, WEP, WPA, WPA2-AES or WPA2-Mixed (overrides "+config.KeySecurity+")")
	pf.String("dhcp", "", "0 disables DHCP (overrides "+config.KeyDHCP+")")
	pf.String("server", "", "host used for the server lookup (overrides "+config.KeyServer+")")
	for key, flag := range map[string]string{
		config.KeySSID:     "ssid",
		config.KeyPassword: "password",
		config.KeySecurity: "security",
		config.KeyDHCP:     "dhcp",
		config.KeyServer:   "server",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	pf.CountVarP(&opts.verbosity, "verbose", "v", "log module traffic, repeat for reassembly progress")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to a rotating file instead of stderr")

	pf.BoolVar(&opts.emulate, "emulate", false, "run against an in-memory module")
	pf.StringVar(&opts.bridge, "bridge", "", "serial port of a USB to SPI bridge")
	pf.IntVar(&opts.baud, "baud", 115200, "serial bridge baud rate")
	pf.StringVar(&opts.spiPort, "spi", "", "spidev port, e.g. SPI0.0")
	pf.StringVar(&opts.csPin, "cs", "GPIO8", "chip select GPIO")
	pf.StringVar(&opts.drdyPin, "drdy", "GPIO25", "data ready GPIO")
	pf.StringVar(&opts.resetPin, "reset", "GPIO24", "reset GPIO")
	pf.DurationVar(&opts.readyTimeout, "ready-timeout", 30*time.Second, "give up when the module stays busy this long, negative waits forever")
	pf.DurationVar(&opts.settle, "settle", 0, "wait this long after joining before using the network")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(publicIPCmd)
	rootCmd.AddCommand(fetchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Commit)
	},
}
