// Package demo holds the example automata run by the CLI and the examples.
package demo
