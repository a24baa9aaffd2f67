package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/stenstromen/bioportal/client"
)

// Default server base URL; can override with BIOPORTAL_SERVER env var or -server flag.
var serverBaseURL = "http://localhost:3000"

func main() {
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://bio.example.com)")
	lang := flag.String("lang", os.Getenv("LANG"), "Message language (en, ar)")
	debug := flag.Bool("debug", false, "Log request diagnostics")
	flag.Parse()

	if env := os.Getenv("BIOPORTAL_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tr, err := client.NewHTTPTransport(serverBaseURL)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := bufio.NewScanner(os.Stdin)
	view := newTermView(in, os.Stdout)
	c := client.New(tr, view, client.WithMessages(client.MessagesFor(*lang)), client.WithLogger(log))

	view.Reload()
	run(ctx, c, view, in, os.Stdout)
}

func run(ctx context.Context, c *client.Controller, view *termView, in *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return
		}
		// The bio argument is passed verbatim, trailing spaces included.
		cmd, arg, _ := strings.Cut(strings.TrimLeft(in.Text(), " \t"), " ")
		cmd = strings.TrimSpace(cmd)

		switch cmd {
		case "":
		case "save":
			token := prompt(in, out, "Token: ")
			label := prompt(in, out, "Label: ")
			c.SaveToken(ctx, token, label)
		case "bio":
			c.UpdateBio(ctx, arg)
		case "delete":
			c.DeleteToken(ctx)
		case "show":
			view.show()
		case "reload":
			c.Reload()
		case "quit", "exit":
			return
		default:
			fmt.Fprintln(out, "Unknown command")
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func prompt(in *bufio.Scanner, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return ""
	}
	return in.Text()
}
