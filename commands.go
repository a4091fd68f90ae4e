package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pngstash/png"
)

// run wraps a command body so any failure prints the error and exits
// non-zero. Nothing is written to the input file when the body errors; every
// transformation completes in memory before writePngFile runs.
func run(body func(args []string) error) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		if err := body(args); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
}

func readPngFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf, nil
}

func writePngFile(path string, buf []byte) error {
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func encodeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "encode <file> <chunk-type> <message>",
		Short: "hide a message in a png file",
		Args:  cobra.ExactArgs(3),
		Run: run(func(args []string) error {
			raw, err := readPngFile(args[0])
			if err != nil {
				return err
			}
			out, err := png.Encode(raw, args[1], args[2])
			if err != nil {
				return err
			}
			dest := args[0]
			if output != "" {
				dest = output
			}
			return writePngFile(dest, out)
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of overwriting the input")
	return cmd
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file> <chunk-type>",
		Short: "print the message hidden under a chunk type",
		Args:  cobra.ExactArgs(2),
		Run: run(func(args []string) error {
			raw, err := readPngFile(args[0])
			if err != nil {
				return err
			}
			message, err := png.Decode(raw, args[1])
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		}),
	}
}

func removeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "remove <file> <chunk-type>",
		Short: "strip the first chunk with the given type from a png file",
		Args:  cobra.ExactArgs(2),
		Run: run(func(args []string) error {
			raw, err := readPngFile(args[0])
			if err != nil {
				return err
			}
			out, removed, err := png.Remove(raw, args[1])
			if err != nil {
				return err
			}
			dest := args[0]
			if output != "" {
				dest = output
			}
			if err := writePngFile(dest, out); err != nil {
				return err
			}
			fmt.Printf("removed %s (%d bytes)\n", removed.Type(), removed.Length())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of overwriting the input")
	return cmd
}

func printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "list every chunk with its type code and data length",
		Args:  cobra.ExactArgs(1),
		Run: run(func(args []string) error {
			raw, err := readPngFile(args[0])
			if err != nil {
				return err
			}
			listing, err := png.ListChunks(raw)
			if err != nil {
				return err
			}
			fmt.Print(listing)
			return nil
		}),
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "report chunks that look like hidden payloads",
		Args:  cobra.ExactArgs(1),
		Run: run(func(args []string) error {
			raw, err := readPngFile(args[0])
			if err != nil {
				return err
			}
			found, err := png.FindHidden(raw)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Println("no hidden payload found")
				return nil
			}
			fmt.Println(color.GreenString("hidden payload candidates:"))
			for _, c := range found {
				fmt.Printf("  %s (%d bytes)\n", color.YellowString(c.Type().String()), c.Length())
			}
			return nil
		}),
	}
}
