package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"

	"github.com/LassiHeikkila/ISM43362/config"
	"github.com/LassiHeikkila/ISM43362/emulator"
	"github.com/LassiHeikkila/ISM43362/module"
	"github.com/LassiHeikkila/ISM43362/output"
	"github.com/LassiHeikkila/ISM43362/transport"
	"github.com/LassiHeikkila/ISM43362/wifi"
)

// emulatedPublicIP is what the emulated ifconfig.io answers.
const emulatedPublicIP = "203.0.113.7"

func loadConfig() config.Config {
	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		output.Println(output.Prefix, "Unable to read configuration file")
		log.V(1).Info("Using defaults", "reason", err.Error())
	}
	return cfg
}

func dialer(cfg config.Config) transport.Dialer {
	switch {
	case opts.emulate:
		return emulator.Dialer{Handler: scenario(cfg).Handle}
	case opts.bridge != "":
		return transport.SerialBridgeDialer{PortName: opts.bridge, BaudRate: opts.baud}
	default:
		return transport.SPIDevDialer{
			Port:       opts.spiPort,
			ChipSelect: opts.csPin,
			DataReady:  opts.drdyPin,
			Reset:      opts.resetPin,
		}
	}
}

// scenario builds an emulated network that accepts the configured
// credentials.
func scenario(cfg config.Config) *emulator.Scenario {
	s := emulator.NewScenario()
	s.Network.SSID = cfg.Association.SSID
	s.Network.Passphrase = cfg.Association.Passphrase
	if _, ok := s.Hosts[cfg.Server]; !ok {
		s.Hosts[cfg.Server] = "198.51.100.10"
	}
	s.NotReadyReads = 2
	s.Web = nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/ip" {
			io.WriteString(w, emulatedPublicIP+"\n")
			return
		}
		fmt.Fprintf(w, "Hello from %s%s\n", r.Host, r.URL.Path)
	})
	return s
}

func openModule(ctx context.Context, cfg config.Config) (module.Module, error) {
	m, err := module.Open(ctx, dialer(cfg), module.Settings{
		ReadyTimeout: opts.readyTimeout,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("open module: %w", err)
	}
	return m, nil
}

var errUnconnected = errors.New("module is not connected")

// associate joins the configured network and waits for it to settle.
func associate(ctx context.Context, w *wifi.Client, cfg config.Config) error {
	if _, err := w.Associate(ctx, cfg.Association); err != nil {
		if !errors.Is(err, wifi.ErrJoinFailed) {
			return err
		}
		output.Printf("%s ERROR: unable to connect to AP (SSID=%s)\n", output.Prefix, cfg.Association.SSID)
	}
	if err := output.Countdown(ctx, opts.settle, 10); err != nil {
		return err
	}
	connected, err := w.IsConnected(ctx)
	if err != nil {
		return err
	}
	if !connected {
		output.Println(output.Prefix, "status: UNCONNECTED")
		return errUnconnected
	}
	output.Println(output.Prefix, "status: CONNECTED")
	return nil
}
