package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/stenstromen/bioportal/client"
)

// termView renders the controller on a line terminal.
type termView struct {
	in  *bufio.Scanner
	out io.Writer

	tokenID    int64
	currentBio string
	dashboard  bool
}

func newTermView(in *bufio.Scanner, out io.Writer) *termView {
	return &termView{in: in, out: out}
}

func (v *termView) SetStatus(r client.Region, text string) {
	fmt.Fprintf(v.out, "[%s] %s\n", r, text)
}

func (v *termView) ShowDashboard() {
	v.dashboard = true
	fmt.Fprintln(v.out, "-- dashboard --")
	fmt.Fprintln(v.out, "commands: bio <text>, delete, show, reload, quit")
}

func (v *termView) ShowTokenID(id int64) {
	v.tokenID = id
	fmt.Fprintf(v.out, "token id: %d\n", id)
}

func (v *termView) SetCurrentBio(bio string) {
	v.currentBio = bio
	fmt.Fprintf(v.out, "current bio: %q\n", bio)
}

func (v *termView) Confirm(prompt string) bool {
	fmt.Fprintf(v.out, "%s [y/N] ", prompt)
	if !v.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(v.in.Text()))
	return answer == "y" || answer == "yes"
}

func (v *termView) Alert(text string) {
	fmt.Fprintf(v.out, "!! %s\n", text)
}

func (v *termView) Reload() {
	v.tokenID, v.currentBio, v.dashboard = 0, "", false
	fmt.Fprintln(v.out, "-- setup --")
	fmt.Fprintln(v.out, "commands: save, quit")
}

func (v *termView) show() {
	if !v.dashboard {
		fmt.Fprintln(v.out, "no token saved")
		return
	}
	fmt.Fprintf(v.out, "token id: %d\ncurrent bio: %q\n", v.tokenID, v.currentBio)
}
