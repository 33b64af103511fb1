package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagAddress        = "address"
	FlagGRPCAddress    = "grpc-address"
	FlagStorageDir     = "storage-dir"
	FlagConfig         = "config"
	FlagRequestTimeout = "request-timeout"
	FlagServerTimeout  = "server-timeout"
	FlagSyncInterval   = "sync-interval"
	FlagDiffServerURL  = "diff-server-url"
	FlagDiffServerAuth = "diff-server-auth"
	FlagDataLayerAuth  = "data-layer-auth"
	FlagDatabase       = "db"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags defines every configuration flag on fs. All defaults are
// zero so an unset flag never overrides the environment.
//
// Flags:
//
//	-a/--address          http host address in format [host]:[port]
//	--grpc-address        grpc host address in format [host]:[port]
//	-d/--storage-dir      directory with sqlite replicas
//	-c/--config           json file path with configs
//	--request-timeout     outbound pull timeout (e.g. "30s")
//	--server-timeout      inbound dispatch timeout
//	--sync-interval       sync job period (e.g. "1m")
//	--db                  database the sync job pulls for
//	--diff-server-url     diff server pull endpoint
//	--diff-server-auth    diff server authorization header value
//	--data-layer-auth     client view auth forwarded to the diff server
func RegisterFlags(fs *pflag.FlagSet) {
	fs.VarP(&NetAddress{}, FlagAddress, "a", "HTTP host address host:port")
	fs.Var(&NetAddress{}, FlagGRPCAddress, "gRPC host address host:port")
	fs.StringP(FlagStorageDir, "d", "", "Directory with sqlite replicas")
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.Duration(FlagRequestTimeout, 0, "Outbound pull timeout (e.g. 30s)")
	fs.Duration(FlagServerTimeout, 0, "Inbound dispatch timeout (e.g. 30s)")
	fs.Duration(FlagSyncInterval, 0, "Sync job period (e.g. 1m)")
	fs.String(FlagDatabase, "", "Database name")
	fs.String(FlagDiffServerURL, "", "Diff server pull URL")
	fs.String(FlagDiffServerAuth, "", "Diff server authorization")
	fs.String(FlagDataLayerAuth, "", "Client view authorization")
}

// parseFlags reads the flags registered by [RegisterFlags]. Flags missing
// from fs are left zero.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	var err error
	str := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && err == nil {
			*dst = f.Value.String()
		}
	}
	dur := func(name string, dst *Duration) {
		if f := fs.Lookup(name); f != nil && err == nil {
			v, derr := fs.GetDuration(name)
			if derr != nil {
				err = fmt.Errorf("error reading flag %q: %w", name, derr)
				return
			}
			*dst = Duration(v)
		}
	}

	var requestTimeout, serverTimeout, syncInterval Duration
	str(FlagAddress, &cfg.Server.HTTPAddress)
	str(FlagGRPCAddress, &cfg.Server.GRPCAddress)
	str(FlagStorageDir, &cfg.Storage.Dir)
	str(FlagConfig, &cfg.JSONFilePath)
	str(FlagDatabase, &cfg.Sync.DatabaseName)
	str(FlagDiffServerURL, &cfg.Sync.DiffServerURL)
	str(FlagDiffServerAuth, &cfg.Sync.DiffServerAuth)
	str(FlagDataLayerAuth, &cfg.Sync.DataLayerAuth)
	dur(FlagRequestTimeout, &requestTimeout)
	dur(FlagServerTimeout, &serverTimeout)
	dur(FlagSyncInterval, &syncInterval)
	if err != nil {
		return nil, err
	}

	cfg.Adapter.RequestTimeout = requestTimeout.Std()
	cfg.Server.RequestTimeout = serverTimeout.Std()
	cfg.Workers.SyncInterval = syncInterval.Std()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
