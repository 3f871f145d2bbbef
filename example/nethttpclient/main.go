package main

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/LassiHeikkila/ISM43362/http"
	"github.com/LassiHeikkila/ISM43362/module"
	"github.com/LassiHeikkila/ISM43362/transport"
	"github.com/LassiHeikkila/ISM43362/wifi"
)

func main() {
	ssidFlag := pflag.String("ssid", "Test", "Which access point to join")
	passwordFlag := pflag.String("password", "Pass", "Passphrase of the access point")
	portFlag := pflag.String("spi", "", "spidev port the module is wired to")
	pflag.Parse()

	url := pflag.Arg(0)
	if url == "" {
		url = "http://example.com"
	}

	ctx := context.Background()
	fmt.Println("Opening module")
	m, err := module.Open(ctx, transport.SPIDevDialer{
		Port:       *portFlag,
		ChipSelect: "GPIO8",
		DataReady:  "GPIO25",
		Reset:      "GPIO24",
	}, module.Settings{})
	if err != nil {
		panic(err)
	}
	defer m.Close()

	fmt.Println("Joining", *ssidFlag)
	if _, err := wifi.NewClient(m, logr.Discard()).Associate(ctx, wifi.AssociationConfig{
		SSID:       *ssidFlag,
		Passphrase: *passwordFlag,
		Security:   wifi.WPA2AES,
		DHCP:       true,
	}); err != nil {
		panic(err)
	}

	fmt.Println("Creating HTTP client")
	client := &nethttp.Client{
		Transport: http.NewTransport(http.NewClient(m, http.Settings{})),
	}

	fmt.Println("GET", url)
	resp, err := client.Get(url)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Got response: %+v\n", resp)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	fmt.Println("Response body:\n", string(b))
}
