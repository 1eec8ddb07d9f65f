// Package process terminates the headless Chrome tree started for PDF output.
package process
