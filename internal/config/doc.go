// Package config defines the client configuration.
//
// A configuration is built from Default, optionally overlaid with a YAML
// file and BSS_ environment variables by Load, and checked by Validate.
//
//	api:
//	  url: https://api.partage.renater.fr/service/domain
//	  timeout: 30s
//	  rate: 5
//	  format: auto
//	cache:
//	  window: 270s
//	  backend: redis
//	  redis:
//	    addr: 127.0.0.1:6379
//	credentials:
//	  source: static
//	  static:
//	    - domain: example.org
//	      secret: s3cr3t
//	log:
//	  level: info
package config
