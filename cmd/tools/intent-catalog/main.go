// cmd/tools/intent-catalog/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
	"github.com/eumatoliveira/leanhealth-websit/pkg/registry"
)

const defaultCatalogPath = "configs/intent-catalog.json"

func main() {
	writeCmd := flag.NewFlagSet("write", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	shadowedCmd := flag.NewFlagSet("shadowed", flag.ExitOnError)

	// Write command flags
	writePath := writeCmd.String("path", defaultCatalogPath, "Output file")
	withResponses := writeCmd.Bool("responses", true, "Include rendered responses")
	schedulingURL := writeCmd.String("scheduling-url", intent.DefaultSchedulingURL, "Link used by the scheduling responses")
	supportEmail := writeCmd.String("support-email", intent.DefaultSupportEmail, "Address used by the support response")

	// Validate command flags
	validatePath := validateCmd.String("path", defaultCatalogPath, "Catalog file")

	// Shadowed command flags
	shadowedPath := shadowedCmd.String("path", "", "Catalog file (defaults to the built-in table)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "write":
		_ = writeCmd.Parse(os.Args[2:])
		matcher := intent.NewMatcher(intent.Config{SchedulingURL: *schedulingURL, SupportEmail: *supportEmail})
		catalog := registry.BuildCatalog(matcher, *withResponses)
		if err := registry.WriteCatalog(*writePath, catalog); err != nil {
			fmt.Printf("Error writing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d intents to %s\n", len(catalog.Intents), *writePath)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		catalog, err := registry.LoadCatalog(*validatePath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		if err := catalog.Validate(); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "shadowed":
		_ = shadowedCmd.Parse(os.Args[2:])
		catalog, err := loadOrBuild(*shadowedPath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		shadows := catalog.Shadowed()
		if len(shadows) == 0 {
			fmt.Println("No shadowed triggers.")
			return
		}
		for _, s := range shadows {
			fmt.Printf("%s: %q never fires, %s matches %q first\n", s.Intent, s.Trigger, s.ShadowedBy, s.ByTrigger)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadOrBuild(path string) (*registry.IntentCatalog, error) {
	if path == "" {
		return registry.BuildCatalog(intent.NewMatcher(intent.DefaultConfig()), false), nil
	}
	return registry.LoadCatalog(path)
}

func help() {
	fmt.Println("Usage: intent-catalog <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  write     Export the rule table as JSON")
	fmt.Println("  validate  Check a catalog file for duplicate intents and empty triggers")
	fmt.Println("  shadowed  List triggers hidden by an earlier rule")
	fmt.Println("  help      Show this message")
}
