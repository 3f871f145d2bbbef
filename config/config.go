// Package config loads the association settings from a wifi.cfg file of
// KEY=VALUE lines, environment variables and command line flags.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/LassiHeikkila/ISM43362/wifi"
)

// Keys as they appear in the file. Environment variables carry EnvPrefix.
const (
	KeySSID     = "SSID"
	KeyPassword = "WIFI_PW"
	KeySecurity = "SECURITY"
	KeyDHCP     = "DHCP"
	KeyServer   = "SERVER"
)

const EnvPrefix = "ISM43362"

// DefaultFile is read when no other file is named.
const DefaultFile = "wifi.cfg"

// Built in values used when a key is set nowhere.
const (
	DefaultSSID     = "Test"
	DefaultPassword = "Pass"
	DefaultSecurity = wifi.WPA2AES
	DefaultServer   = "ifconfig.io"
)

// ErrUnreadable is returned alongside the defaults when the file could not
// be read.
var ErrUnreadable = errors.New("unable to read configuration file")

// Config is the immutable result of loading.
type Config struct {
	Association wifi.AssociationConfig
	Server      string
}

// Defaults returns the built in configuration.
func Defaults() Config {
	return Config{
		Association: wifi.AssociationConfig{
			SSID:       DefaultSSID,
			Passphrase: DefaultPassword,
			Security:   DefaultSecurity,
			DHCP:       true,
		},
		Server: DefaultServer,
	}
}

// NewViper returns a viper instance holding the defaults and reading
// ISM43362_* environment variables. Flags may be bound to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeySSID, d.Association.SSID)
	v.SetDefault(KeyPassword, d.Association.Passphrase)
	v.SetDefault(KeySecurity, d.Association.Security.String())
	v.SetDefault(KeyDHCP, "1")
	v.SetDefault(KeyServer, d.Server)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load merges the file at path into v and decodes the result. A missing or
// unreadable file is reported with ErrUnreadable, but the returned Config is
// still usable and built from the remaining sources.
func Load(v *viper.Viper, path string) (Config, error) {
	var readErr error
	if path != "" {
		if err := mergeFile(v, path); err != nil {
			readErr = fmt.Errorf("%w %s: %w", ErrUnreadable, path, err)
		}
	}
	return decode(v), readErr
}

func mergeFile(v *viper.Viper, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	values, err := parse(f)
	if err != nil {
		return err
	}
	return v.MergeConfigMap(values)
}

// parse reads KEY=VALUE lines. The value is everything after the first '='
// taken literally: no comments, quoting, trimming or expansion. Lines
// without '=' are ignored.
func parse(r io.Reader) (map[string]any, error) {
	values := make(map[string]any)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values, sc.Err()
}

func decode(v *viper.Viper) Config {
	security, ok := wifi.ParseSecurity(strings.TrimSpace(v.GetString(KeySecurity)))
	if !ok {
		security = DefaultSecurity
	}
	return Config{
		Association: wifi.AssociationConfig{
			SSID:       v.GetString(KeySSID),
			Passphrase: v.GetString(KeyPassword),
			Security:   security,
			DHCP:       strings.TrimSpace(v.GetString(KeyDHCP)) != "0",
		},
		Server: v.GetString(KeyServer),
	}
}
