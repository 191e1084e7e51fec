package auth

import (
	"strings"

	"golang.org/x/oauth2"
)

const (
	// Strava OAuth endpoints
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes required for gear tracking. Strava uses comma-separated scopes;
// profile:read_all covers the bike and shoe lists.
var Scopes = []string{
	"read,activity:read_all,profile:read_all",
}

// Config holds the OAuth client credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8090/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// AuthResult contains the token and athlete info from successful auth
type AuthResult struct {
	Token       *oauth2.Token
	AthleteID   int64
	AthleteName string
	Scope       string
}

// ExtractAthlete pulls the athlete ID and name out of the token extras.
// Strava includes a summary athlete in the token response.
func ExtractAthlete(token *oauth2.Token) (id int64, name string) {
	athlete, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return 0, ""
	}
	if v, ok := athlete["id"].(float64); ok {
		id = int64(v)
	}
	first, _ := athlete["firstname"].(string)
	last, _ := athlete["lastname"].(string)
	name = strings.TrimSpace(first + " " + last)
	return id, name
}

// ExtractScope reads the granted scope from the token extras.
func ExtractScope(token *oauth2.Token) string {
	if scope, ok := token.Extra("scope").(string); ok {
		return scope
	}
	return ""
}
