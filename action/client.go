/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package action

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// ErrNoCredentials is returned when neither a token nor GitHub App
// credentials are configured.
var ErrNoCredentials = errors.New("either token or app_id, installation_id and private_key are required to add labels")

// NewClient returns a GitHub client authenticated as a GitHub App
// installation when app credentials are configured, or with the token otherwise.
func NewClient(ctx context.Context, cfg *Config) (*github.Client, error) {
	var hc *http.Client
	switch {
	case cfg.AppID != 0 && cfg.InstallationID != 0 && cfg.PrivateKey != "":
		tr, err := ghinstallation.New(http.DefaultTransport, cfg.AppID, cfg.InstallationID, []byte(cfg.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("creating installation transport: %w", err)
		}
		if enterprise(cfg.APIURL) {
			tr.BaseURL = strings.TrimSuffix(cfg.APIURL, "/")
		}
		hc = &http.Client{Transport: tr}
	case cfg.Token != "":
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	default:
		return nil, ErrNoCredentials
	}

	client := github.NewClient(hc)
	if enterprise(cfg.APIURL) {
		c, err := client.WithEnterpriseURLs(cfg.APIURL, cfg.APIURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URL %s: %w", cfg.APIURL, err)
		}
		client = c
	}
	return client, nil
}

func enterprise(apiURL string) bool {
	return apiURL != "" && strings.TrimSuffix(apiURL, "/") != defaultAPIURL
}
