package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"formatic/internal/config"
	"formatic/internal/harness"
	"formatic/internal/logging"
	"formatic/internal/walker"
)

var replCmd = &cobra.Command{
	Use:   "repl -- COMMAND...",
	Short: "Hand-type accessor strings against a live oracle and see the classified response",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().StringVarP(&flagInjectionMarker, "injection-marker", "i", "@@", "sigil replaced by the payload in the command template")
	replCmd.Flags().StringVarP(&flagResponseMarker, "response-marker", "m", "", "override the random response marker")
	replCmd.Flags().IntVarP(&flagRandomMarkerLen, "random-response-marker-length", "l", 16, "length of the auto-generated response marker")
}

// runRepl opens an interactive line-editing loop around a single
// repeatedly-invoked primitive: send one raw accessor string through the
// oracle and print its classification, without driving a full traversal.
// Grounded on cmd/kk and cmd/testshell's interactive wrappers around a
// single shelled-out primitive, with chzyer/readline standing in for their
// bubbletea-driven input loop since there is no full-screen UI here.
func runRepl(cmd *cobra.Command, args []string) error {
	cfgPath, err := config.ResolvePath(flagConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("injection-marker") {
		cfg.InjectionMarker = flagInjectionMarker
	}
	if cmd.Flags().Changed("response-marker") {
		cfg.ResponseMarker = flagResponseMarker
	}
	if cmd.Flags().Changed("random-response-marker-length") {
		cfg.RandomResponseMarkerLen = flagRandomMarkerLen
	}

	logger := logging.Default(cfg.Verbosity)

	responseMarker := cfg.ResponseMarker
	if responseMarker == "" {
		responseMarker, err = harness.RandomMarker(cfg.RandomResponseMarkerLen)
		if err != nil {
			return fmt.Errorf("generating response marker: %w", err)
		}
	}

	h, err := harness.NewSubprocessHarness(args, cfg.InjectionMarker, responseMarker,
		harness.WithLogger(logging.Component(logger, "harness")))
	if err != nil {
		return fmt.Errorf("configuration fault: %w", err)
	}

	rl, err := readline.New("formatic> ")
	if err != nil {
		return fmt.Errorf("opening readline prompt: %w", err)
	}
	defer rl.Close()

	ctx := context.Background()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		injection := strings.TrimSpace(line)
		if injection == "" {
			continue
		}

		response, ok := h.SendInjection(ctx, injection)
		if !ok {
			fmt.Println("(no response)")
			continue
		}
		kind := walker.Classify(injection, response)
		fmt.Printf("%s -> %q\n", kindName(kind), response)
	}
}

func kindName(k walker.Kind) string {
	switch k {
	case walker.KindName:
		return "name"
	case walker.KindDocString:
		return "docstring"
	case walker.KindClass:
		return "class"
	case walker.KindFunction:
		return "function"
	case walker.KindCodeObject:
		return "code-object"
	case walker.KindSlotWrapper:
		return "slot-wrapper"
	case walker.KindModule:
		return "module"
	case walker.KindAttributeDescriptor:
		return "attribute-descriptor"
	case walker.KindValue:
		return "value"
	default:
		return "failure"
	}
}
