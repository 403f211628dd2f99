// Package utils holds small helpers shared by the commands and the sync packages,
// such as parsing the comma separated id lists given on the command line.
package utils
