// Package utils provides clock formatting helpers shared by the output sinks.
package utils
