package main

import (
	assistant "github.com/Maverick-list/Personal-Advance-Portofolio/client"
)

func newClient(api, token string) (*assistant.Client, error) {
	return assistant.New(api, assistant.WithToken(token))
}
