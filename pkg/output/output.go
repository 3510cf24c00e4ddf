package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/retrospace/messenger-cli/pkg/config"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	if config.GetString("output.format") == "json" {
		return FormatJSON
	}
	return FormatText
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "text"
}

// Print outputs data in the configured format
func Print(data interface{}) error {
	if GetOutputFormat() == FormatJSON {
		return printJSON(data)
	}
	fmt.Printf("%v\n", data)
	return nil
}

// PrintTable prints rows with headers using a tabwriter
func PrintTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	color.New(color.FgGreen).Printf(msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	color.New(color.FgRed).Printf("Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	color.New(color.FgCyan).Printf(msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Printf("Warning: "+msg+"\n", args...)
}

// FormatAsJSON converts data to a pretty JSON string
func FormatAsJSON(data interface{}) (string, error) {
	out, err := jsoniter.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func printJSON(data interface{}) error {
	out, err := FormatAsJSON(data)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
