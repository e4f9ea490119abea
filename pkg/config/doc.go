/*
Package config loads the settings of the automata CLI and facade.

Sources are applied in order, later ones winning:

 1. Default()
 2. a YAML file (optional)
 3. a .env file (optional, only fills variables not already set)
 4. AUTOMATA_* environment variables

Example file:

	logging:
	  enabled: true
	  level: debug
	engine:
	  deterministic: true
	  delay: 250ms
	registry:
	  backend: redis
	  addr: localhost:6379
*/
package config
