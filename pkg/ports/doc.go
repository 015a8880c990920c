/*
Package ports declares the interfaces regula's adapters implement.

Driven ports:
  - PatternStore: persistence of named patterns (memory, Redis, YAML file).
*/
package ports
