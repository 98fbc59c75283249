// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package openstack

import (
	"context"

	gooseerrors "github.com/go-goose/goose/v5/errors"
	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type clientSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&clientSuite{})

func validConfig() Config {
	return Config{
		AuthURL:    "https://keystone.example.com:5000/v3",
		Region:     "east",
		AuthType:   UserPassAuthType,
		Username:   "bob",
		Password:   "dobbs",
		TenantName: "gary",
	}
}

func (s *clientSuite) TestValidate(c *gc.C) {
	c.Check(validConfig().Validate(), jc.ErrorIsNil)
}

func (s *clientSuite) TestValidateErrors(c *gc.C) {
	for i, test := range []struct {
		about  string
		mutate func(*Config)
		err    string
	}{{
		about:  "no auth url",
		mutate: func(cfg *Config) { cfg.AuthURL = "" },
		err:    "missing auth-url not valid",
	}, {
		about:  "bad auth url",
		mutate: func(cfg *Config) { cfg.AuthURL = "keystone.foo" },
		err:    `validating auth-url: auth-url "keystone.foo" not valid`,
	}, {
		about:  "no region",
		mutate: func(cfg *Config) { cfg.Region = "" },
		err:    "missing region not valid",
	}, {
		about:  "no password",
		mutate: func(cfg *Config) { cfg.Password = "" },
		err:    "userpass credential without username or password not valid",
	}, {
		about: "no secret key",
		mutate: func(cfg *Config) {
			cfg.AuthType = AccessKeyAuthType
			cfg.AccessKey = "key"
		},
		err: "access-key credential without access-key or secret-key not valid",
	}, {
		about:  "unknown auth type",
		mutate: func(cfg *Config) { cfg.AuthType = "oauth" },
		err:    `"oauth" auth-type not supported`,
	}} {
		c.Logf("test %d: %s", i, test.about)
		cfg := validConfig()
		test.mutate(&cfg)
		c.Check(cfg.Validate(), gc.ErrorMatches, test.err)
	}
}

func (s *clientSuite) TestWithEnvironment(c *gc.C) {
	s.PatchEnvironment("OS_AUTH_URL", "https://keystone.example.com:5000/v2.0")
	s.PatchEnvironment("OS_REGION_NAME", "west")
	s.PatchEnvironment("OS_USERNAME", "fred")
	s.PatchEnvironment("OS_PASSWORD", "secret")
	s.PatchEnvironment("OS_TENANT_NAME", "gary")

	cfg, err := Config{Region: "east"}.WithEnvironment()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.AuthURL, gc.Equals, "https://keystone.example.com:5000/v2.0")
	c.Check(cfg.Region, gc.Equals, "east")
	c.Check(cfg.Username, gc.Equals, "fred")
	c.Check(cfg.Password, gc.Equals, "secret")
	c.Check(cfg.TenantName, gc.Equals, "gary")
	c.Check(cfg.AuthType, gc.Equals, UserPassAuthType)
	c.Check(cfg.Validate(), jc.ErrorIsNil)
}

func (s *clientSuite) TestWithEnvironmentKeepsConfiguredCredential(c *gc.C) {
	s.PatchEnvironment("OS_USERNAME", "fred")
	s.PatchEnvironment("OS_PASSWORD", "secret")

	cfg, err := validConfig().WithEnvironment()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Username, gc.Equals, "bob")
	c.Check(cfg.Password, gc.Equals, "dobbs")
}

func (s *clientSuite) TestNewCredentialsUserPass(c *gc.C) {
	cred, mode := newCredentials(validConfig())
	c.Check(mode, gc.Equals, identity.AuthUserPass)
	c.Check(cred, jc.DeepEquals, identity.Credentials{
		URL:        "https://keystone.example.com:5000/v3",
		Region:     "east",
		User:       "bob",
		Secrets:    "dobbs",
		TenantName: "gary",
	})
}

func (s *clientSuite) TestNewCredentialsUserPassV3(c *gc.C) {
	cfg := validConfig()
	cfg.UserDomainName = "default"
	_, mode := newCredentials(cfg)
	c.Check(mode, gc.Equals, identity.AuthUserPassV3)

	cfg = validConfig()
	cfg.Version = 3
	cred, mode := newCredentials(cfg)
	c.Check(mode, gc.Equals, identity.AuthUserPassV3)
	c.Check(cred.Version, gc.Equals, 3)

	cfg.Version = 2
	_, mode = newCredentials(cfg)
	c.Check(mode, gc.Equals, identity.AuthUserPass)
}

func (s *clientSuite) TestNewCredentialsAccessKey(c *gc.C) {
	cfg := validConfig()
	cfg.AuthType = AccessKeyAuthType
	cfg.AccessKey = "key"
	cfg.SecretKey = "secret-key"

	cred, mode := newCredentials(cfg)
	c.Check(mode, gc.Equals, identity.AuthKeyPair)
	c.Check(cred.User, gc.Equals, "key")
	c.Check(cred.Secrets, gc.Equals, "secret-key")
}

// fakeAuthClient is an authenticatingClient with a canned service
// catalogue.
type fakeAuthClient struct {
	fakeRequester

	authErr   error
	endpoints map[string]identity.ServiceURLs
}

func (f *fakeAuthClient) Authenticate() error {
	return f.authErr
}

func (f *fakeAuthClient) EndpointsForRegion(region string) identity.ServiceURLs {
	return f.endpoints[region]
}

var _ authenticatingClient = (*fakeAuthClient)(nil)

func (s *clientSuite) openWith(client *fakeAuthClient) (*Networking, bool, error) {
	return open(context.Background(), validConfig(), func(Config) authenticatingClient {
		return client
	})
}

func (s *clientSuite) TestOpen(c *gc.C) {
	client := &fakeAuthClient{
		endpoints: map[string]identity.ServiceURLs{
			"east": {"network": "https://neutron.example.com:9696"},
		},
	}
	client.response = `{"network": {"id": "N1", "name": "x", "status": "ACTIVE"}}`

	networking, ok, err := s.openWith(client)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ok, jc.IsTrue)

	// The returned networking talks through the authenticated client.
	_, err = networking.Network(context.Background(), "N1")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(client.requests, gc.HasLen, 1)
}

func (s *clientSuite) TestOpenWithoutNeutron(c *gc.C) {
	client := &fakeAuthClient{
		endpoints: map[string]identity.ServiceURLs{
			"east": {"compute": "https://nova.example.com:8774"},
		},
	}

	networking, ok, err := s.openWith(client)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(ok, jc.IsFalse)
	c.Check(networking, gc.IsNil)
}

func (s *clientSuite) TestOpenUnauthorised(c *gc.C) {
	client := &fakeAuthClient{
		authErr: gooseerrors.NewUnauthorisedf(nil, nil, "invalid credentials"),
	}

	_, _, err := s.openWith(client)
	c.Check(err, gc.ErrorMatches, `(?s)authentication failed : .*Please ensure the credentials are correct.*`)
}

func (s *clientSuite) TestOpenAuthenticationError(c *gc.C) {
	client := &fakeAuthClient{
		authErr: errors.New("connection refused"),
	}

	_, _, err := s.openWith(client)
	c.Check(err, gc.ErrorMatches, `authentication failed.: connection refused`)
}

func (s *clientSuite) TestOpenInvalidConfig(c *gc.C) {
	_, _, err := open(context.Background(), Config{}, func(Config) authenticatingClient {
		c.Fatalf("client should not be created")
		return nil
	})
	c.Check(err, jc.ErrorIs, errors.NotValid)
}
