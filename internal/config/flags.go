package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// flagArgs returns the process arguments without the program name.
func flagArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (postgres, sqlite)
//	-c/-config json file path with configs
//	-token-digest-key key used to digest opaque tokens
//	-token-sign-key access token signing key
//	-token-issuer access token issuer name
//	-token-duration access token duration (e.g., "1h", "30m")
//	-reset-ttl password reset window (e.g., "2h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-mail-relay mail relay base URL
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("microblog", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var tokenDigestKey, tokenSignKey, tokenIssuer string
	var tokenDuration, resetTTL, requestTimeout time.Duration
	var mailRelay string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenDigestKey, "token-digest-key", "", "Opaque token digest key")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Access token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Access token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Access token duration (e.g., 1h, 30m)")
	fs.DurationVar(&resetTTL, "reset-ttl", 0, "Password reset window (e.g., 2h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&mailRelay, "mail-relay", "", "Mail relay base URL")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenDigestKey: tokenDigestKey,
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			ResetTokenTTL:  resetTTL,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			Mail: Mail{RelayURL: mailRelay},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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
		return errors.New("port number must be in range 1..65535")
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
