package config

import (
	"fmt"
	"os"
)

type PublisherConfig struct {
	ContentApiUrl string
	ClientID      string
	ClientSecret  string
	TokenEndpoint string
}

func GetPublisherConfig() (*PublisherConfig, error) {
	contentApiUrl := os.Getenv("CONTENT_API_URL")
	if contentApiUrl == "" {
		return nil, fmt.Errorf("CONTENT_API_URL must be set")
	}

	clientID := os.Getenv("CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("CLIENT_ID must be set")
	}

	clientSecret := os.Getenv("CLIENT_SECRET")
	if clientSecret == "" {
		return nil, fmt.Errorf("CLIENT_SECRET must be set")
	}

	tokenEndpoint := os.Getenv("TOKEN_ENDPOINT")
	if tokenEndpoint == "" {
		return nil, fmt.Errorf("TOKEN_ENDPOINT must be set")
	}

	return &PublisherConfig{
		ContentApiUrl: contentApiUrl,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		TokenEndpoint: tokenEndpoint,
	}, nil
}
