// Command devtoken mints a signed access token for local development, standing
// in for the identity provider:
//
//	devtoken --subject alice --ttl 1h
//	curl -b access_token=$(devtoken --subject alice) localhost:8080/recipes
package main

import "os"

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
