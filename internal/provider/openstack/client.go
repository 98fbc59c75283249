// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package openstack

import (
	"context"
	"net/url"

	"github.com/go-goose/goose/v5/client"
	gooseerrors "github.com/go-goose/goose/v5/errors"
	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("netstack.provider.openstack")

// Auth types accepted in Config.AuthType.
const (
	UserPassAuthType  = "userpass"
	AccessKeyAuthType = "access-key"
)

// Config holds the cloud endpoint and credential used to reach the
// OpenStack APIs.
type Config struct {
	AuthURL           string `yaml:"auth-url"`
	Region            string `yaml:"region"`
	AuthType          string `yaml:"auth-type"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	AccessKey         string `yaml:"access-key"`
	SecretKey         string `yaml:"secret-key"`
	TenantName        string `yaml:"tenant-name"`
	TenantID          string `yaml:"tenant-id"`
	DomainName        string `yaml:"domain-name"`
	UserDomainName    string `yaml:"user-domain-name"`
	ProjectDomainName string `yaml:"project-domain-name"`
	Version           int    `yaml:"version"`
	SkipTLSVerify     bool   `yaml:"skip-tls-verify"`
}

// WithEnvironment returns a copy of the config where every unset field is
// filled from the OS_* environment variables.
func (c Config) WithEnvironment() (Config, error) {
	creds, err := identity.CredentialsFromEnv()
	if err != nil {
		return c, errors.Errorf("failed to retrieve credential from env : %v", err)
	}
	fill := func(dst *string, value string) {
		if *dst == "" {
			*dst = value
		}
	}
	fill(&c.AuthURL, creds.URL)
	fill(&c.Region, creds.Region)
	fill(&c.TenantName, creds.TenantName)
	fill(&c.TenantID, creds.TenantID)
	fill(&c.DomainName, creds.Domain)
	fill(&c.UserDomainName, creds.UserDomain)
	fill(&c.ProjectDomainName, creds.ProjectDomain)
	if c.Version == 0 {
		c.Version = creds.Version
	}
	switch c.AuthType {
	case "", UserPassAuthType:
		if c.Username == "" && c.Password == "" && c.AccessKey == "" {
			c.Username = creds.User
			c.Password = creds.Secrets
		}
	case AccessKeyAuthType:
		fill(&c.AccessKey, creds.User)
		fill(&c.SecretKey, creds.Secrets)
	}
	if c.AuthType == "" {
		c.AuthType = UserPassAuthType
		if c.AccessKey != "" {
			c.AuthType = AccessKeyAuthType
		}
	}
	return c, nil
}

// Validate checks that the config can be used to authenticate.
func (c Config) Validate() error {
	if c.AuthURL == "" {
		return errors.NotValidf("missing auth-url")
	}
	if err := validateAuthURL(c.AuthURL); err != nil {
		return errors.Annotate(err, "validating auth-url")
	}
	if c.Region == "" {
		return errors.NotValidf("missing region")
	}
	switch c.AuthType {
	case UserPassAuthType:
		if c.Username == "" || c.Password == "" {
			return errors.NotValidf("userpass credential without username or password")
		}
	case AccessKeyAuthType:
		if c.AccessKey == "" || c.SecretKey == "" {
			return errors.NotValidf("access-key credential without access-key or secret-key")
		}
	default:
		return errors.NotSupportedf("%q auth-type", c.AuthType)
	}
	return nil
}

func validateAuthURL(authURL string) error {
	parts, err := url.Parse(authURL)
	if err != nil || parts.Host == "" || parts.Scheme == "" {
		return errors.NotValidf("auth-url %q", authURL)
	}
	return nil
}

// newCredentials returns the goose credentials and auth mode for cfg.
func newCredentials(cfg Config) (identity.Credentials, identity.AuthMode) {
	cred := identity.Credentials{
		Region:     cfg.Region,
		URL:        cfg.AuthURL,
		TenantName: cfg.TenantName,
		TenantID:   cfg.TenantID,
	}

	// AuthType is validated before the client is created, so it's known
	// to be one of these values.
	var authMode identity.AuthMode
	switch cfg.AuthType {
	case UserPassAuthType:
		cred.User = cfg.Username
		cred.Secrets = cfg.Password
		cred.ProjectDomain = cfg.ProjectDomainName
		cred.UserDomain = cfg.UserDomainName
		cred.Domain = cfg.DomainName
		if cfg.Version != 0 {
			if cfg.Version < 3 {
				authMode = identity.AuthUserPass
			} else {
				authMode = identity.AuthUserPassV3
			}
			cred.Version = cfg.Version
		} else if cred.Domain != "" || cred.UserDomain != "" || cred.ProjectDomain != "" {
			authMode = identity.AuthUserPassV3
		} else {
			authMode = identity.AuthUserPass
		}
	case AccessKeyAuthType:
		cred.User = cfg.AccessKey
		cred.Secrets = cfg.SecretKey
		authMode = identity.AuthKeyPair
	}
	return cred, authMode
}

// newGooseClient is the default client constructor used by Open.
func newGooseClient(cfg Config) client.AuthenticatingClient {
	cred, authMode := newCredentials(cfg)
	newClient := client.NewClient
	if cfg.SkipTLSVerify {
		// Use NonValidatingClient, in case the endpoint is behind a cert
		// the host does not trust.
		newClient = client.NewNonValidatingClient
	}
	return newClient(&cred, authMode, nil)
}

type authenticator interface {
	Authenticate() error
}

func authenticateClient(ctx context.Context, auth authenticator) error {
	err := auth.Authenticate()
	if err != nil {
		// Log the error in case there are any useful hints,
		// but provide a readable and helpful error message
		// to the user.
		logger.Debugf("Authenticate() failed: %v", err)
		if gooseerrors.IsUnauthorised(err) {
			return errors.Errorf("authentication failed : %v\n"+
				"Please ensure the credentials are correct. A common mistake is\n"+
				"to specify the wrong tenant. Use the OpenStack project name\n"+
				"for tenant-name in your configuration. \n", err)
		}
		return errors.Annotate(err, "authentication failed.")
	}
	return nil
}

// endpointLister is the part of the goose client used to check the service
// catalogue.
type endpointLister interface {
	EndpointsForRegion(region string) identity.ServiceURLs
}

// supportsNeutron reports whether the region has a network endpoint.
func supportsNeutron(c endpointLister, region string) bool {
	_, ok := c.EndpointsForRegion(region)["network"]
	return ok
}

// authenticatingClient is the part of the goose client used by Open.
type authenticatingClient interface {
	Requester
	authenticator
	endpointLister
}

// Open authenticates against the cloud described by cfg and returns a
// Networking talking to its Neutron endpoint. The boolean result is false,
// and the Networking nil, when the cloud has no Neutron endpoint in the
// region.
func Open(ctx context.Context, cfg Config) (*Networking, bool, error) {
	return open(ctx, cfg, func(cfg Config) authenticatingClient {
		return newGooseClient(cfg)
	})
}

func open(ctx context.Context, cfg Config, newClient func(Config) authenticatingClient) (*Networking, bool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, false, errors.Annotate(err, "validating openstack config")
	}
	c := newClient(cfg)
	if err := authenticateClient(ctx, c); err != nil {
		return nil, false, errors.Trace(err)
	}
	if !supportsNeutron(c, cfg.Region) {
		logger.Errorf("Neutron networking is not supported by this OpenStack cloud in region %q", cfg.Region)
		return nil, false, nil
	}
	logger.Debugf("using neutron networking in region %q", cfg.Region)
	return NewNetworking(c), true, nil
}
