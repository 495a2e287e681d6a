// Package process groups and terminates external processes.
package process
