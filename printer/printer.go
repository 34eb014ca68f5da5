// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/terramate-io/rustversion/errors"
)

var (
	bold       = color.New(color.Bold).Sprint
	boldYellow = color.New(color.Bold, color.FgYellow).Sprint
	boldRed    = color.New(color.Bold, color.FgRed).Sprint
	boldGreen  = color.New(color.Bold, color.FgGreen).Sprint
)

// Printer encapsulates an io.Writer.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new Printer writing to w, e.g.: stdout, stderr, a file.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w}
}

// Println prints a message to the io.Writer.
func (p *Printer) Println(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Fieldln prints a "name: value" line with the name in bold.
func (p *Printer) Fieldln(name string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", bold(name+":"), value)
}

// Warnln prints a message with a "Warning:" prefix in the boldYellow style.
func (p *Printer) Warnln(title string) {
	fmt.Fprintln(p.w, boldYellow("Warning:"), bold(title))
}

// ErrorWithDetailsln prints an error with a title and the underlying error. If
// the error contains multiple error items, each one is printed with a `>`
// prefix.
// e.g.:
// Error: loading CLI configuration
// > /home/user/.rustversionrc:3,1-5: attribute type mismatch: ...
// > /home/user/.rustversionrc:4,1-8: unrecognized attribute: ...
func (p *Printer) ErrorWithDetailsln(title string, err error) {
	p.Errorln(title)

	for _, item := range toStrings(err) {
		fmt.Fprintln(p.w, boldRed(">"), item)
	}
}

// Errorln prints a message with an "Error:" prefix in the boldRed style.
func (p *Printer) Errorln(title string) {
	fmt.Fprintln(p.w, boldRed("Error:"), bold(title))
}

// Successln prints a message in the boldGreen style.
func (p *Printer) Successln(msg string) {
	fmt.Fprintln(p.w, boldGreen(msg))
}

// Failureln prints a message in the boldRed style.
func (p *Printer) Failureln(msg string) {
	fmt.Fprintln(p.w, boldRed(msg))
}

// toStrings converts an error into a list of strings where each string
// represents an individual error. Errors not wrapping an *errors.Error are
// printed as is.
func toStrings(err error) []string {
	var list *errors.List
	if !errors.As(err, &list) {
		return []string{err.Error()}
	}
	items := make([]string, 0, len(list.Errors()))
	for _, item := range list.Errors() {
		items = append(items, item.Error())
	}
	return items
}
