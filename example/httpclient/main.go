package main

import (
	"context"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/LassiHeikkila/ISM43362/http"
	"github.com/LassiHeikkila/ISM43362/module"
	"github.com/LassiHeikkila/ISM43362/output"
	"github.com/LassiHeikkila/ISM43362/transport"
	"github.com/LassiHeikkila/ISM43362/wifi"
)

func init() {
	output.SetWriter(os.Stdout)
}

func main() {
	ssidFlag := pflag.String("ssid", "Test", "Which access point to join")
	passwordFlag := pflag.String("password", "Pass", "Passphrase of the access point")
	deviceFlag := pflag.String("device", "/dev/ttyUSB0", "Serial port of the SPI bridge the module sits behind")
	pathFlag := pflag.String("path", "/", "Path to GET")
	pflag.Parse()

	host := pflag.Arg(0)
	if host == "" {
		output.Println("Please provide a host to GET from as the first unnamed argument")
		return
	}

	ctx := context.Background()
	m, err := module.Open(ctx, transport.SerialBridgeDialer{PortName: *deviceFlag}, module.Settings{})
	if err != nil {
		output.Println("Failed to create working module:", err)
		return
	}
	defer m.Close()

	_, err = wifi.NewClient(m, logr.Discard()).Associate(ctx, wifi.AssociationConfig{
		SSID:       *ssidFlag,
		Passphrase: *passwordFlag,
		Security:   wifi.WPA2AES,
		DHCP:       true,
	})
	if err != nil {
		output.Println("Failed to join", *ssidFlag, err)
		return
	}

	httpClient := http.NewClient(m, http.Settings{})
	data, err := httpClient.Get(ctx, host, *pathFlag)
	if err != nil {
		output.Println("Failed to GET", host+*pathFlag, err)
	} else {
		output.Println("GOT DATA:", data)
	}
}
