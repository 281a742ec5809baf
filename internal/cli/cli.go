package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/velt/spriteset/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("spriteset", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
spriteset - character sprite resolution and compositing engine.

Usage:
  spriteset [options] ASSET_ROOT

Arguments:
  ASSET_ROOT
    Directory holding one sub-directory per character.

Without -character the loaded inventory is printed; with it, the selected
state is resolved into an ordered draw plan.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an engine configuration file (HCL).")
	characterFlag := flagSet.String("character", "", "Character id to resolve.")
	poseFlag := flagSet.String("pose", "", "Pose name. Defaults to the character's first pose.")
	expressionFlag := flagSet.String("expression", "", "Expression id. Defaults to \"0\".")
	outfitFlag := flagSet.String("outfit", "", "Outfit key. Defaults to the character's default outfit.")
	accessoriesFlag := flagSet.String("accessories", "", "Comma-separated active accessory names.")
	blushFlag := flagSet.Bool("blush", false, "Prefer the blushing face variant.")
	strictFlag := flagSet.Bool("strict", false, "Fail loudly on unresolvable outfit or expression.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "" && logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var accessories []string
	for _, name := range strings.Split(*accessoriesFlag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			accessories = append(accessories, name)
		}
	}

	config, err := app.NewConfig(app.Config{
		AssetRoot:   flagSet.Arg(0),
		ConfigPath:  *configFlag,
		Character:   *characterFlag,
		Pose:        *poseFlag,
		Expression:  *expressionFlag,
		Outfit:      *outfitFlag,
		Accessories: accessories,
		Blush:       *blushFlag,
		Strict:      *strictFlag,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
