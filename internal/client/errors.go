package client

import "errors"

var (
	ErrNoStores = errors.New("no store registry provided")
	ErrNoConfig = errors.New("no client config provided")
)
