/*
main.go - Application entry point

PURPOSE:
  dtconv parses and renders Provys datatype literals. It runs either as a
  one-shot converter or as an HTTP conversion service.

COMMANDS:
  convert TYPE VALUE   Parse VALUE and print it in every encoding
  types                List registered type names
  serve                Start the HTTP API

CONFIGURATION:
  .dtconv.yaml in the working or home directory, DTCONV_* environment
  variables and flags. See config/config.go for the keys.

EXAMPLES:
  dtconv convert DATE 2011-12-31
  dtconv convert DATETIME "26.11.1989 13:05:00" --from provys -o json
  DTCONV_PORT=3000 dtconv serve

SEE ALSO:
  - api/server.go: Router configuration
  - datatype/registry.go: Registered types
*/
package main

func main() {
	Execute()
}
