package main

import (
	"fmt"
	"io"

	"pkt.systems/version"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, version.Module(), version.Current())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: mdlive [flags] [FILE]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview a Markdown file in the browser. By default mdlive serves FILE and")
	fmt.Fprintln(w, "reloads the page whenever it changes. With --static-mode it renders once")
	fmt.Fprintln(w, "to an HTML file, opens it and exits; FILE may then be omitted to read stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode:")
	fmt.Fprintln(w, "  -s, --static-mode         Render once, open in browser, exit")
	fmt.Fprintln(w, "  -o, --output <path>       Static mode: write HTML here instead of a temp file")
	fmt.Fprintln(w, "      --no-open             Do not open a browser")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --host <addr>         Bind address (default 127.0.0.1)")
	fmt.Fprintln(w, "      --port <n>            HTTP port (default 3030, 0 = any free port)")
	fmt.Fprintln(w, "      --reload <mode>       Reload transport: sse, websocket")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/, templates/, favicon.svg")
	fmt.Fprintln(w, "      --highlight <name>    Chroma style for code blocks (default github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug messages")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration and exit")
	fmt.Fprintln(w, "      --version             Print version and exit")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDLIVE_CONFIG, MDLIVE_HOST, MDLIVE_PORT, MDLIVE_RELOAD, MDLIVE_STYLE")
	fmt.Fprintln(w, "  override the config file; flags override both.")
	fmt.Fprintf(w, "  BROWSER selects the browser command (%%s marks the target).\n")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage, 3 input/output, 4 browser, 5 server")
}
