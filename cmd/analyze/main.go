package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"decision-framework-be/internal/bootstrap"
	"decision-framework-be/internal/config"
	"decision-framework-be/internal/dto"
	"decision-framework-be/pkg/catalog"
)

// Analyze a single situation from the command line and print the decision
// report. Same wiring as the REST entrypoint, minus the server.
func main() {
	description := flag.String("description", "", "what is happening (required)")
	stakes := flag.String("stakes", "medium", "low|medium|high|critical")
	domain := flag.String("domain", "personal", "personal|professional|family|financial|health")
	tags := flag.String("tags", "", "comma-separated situation tags")
	emotions := flag.String("emotions", "", "comma-separated emotions")
	flag.Parse()

	if *description == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	kb, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		log.Fatalf("Unable to load catalog: %v", err)
	}

	container := bootstrap.NewContainer(kb, cfg)
	defer container.Logger.Sync()

	req := &dto.AnalyzeSituationRequest{
		Description: *description,
		Stakes:      *stakes,
		Domain:      *domain,
		Tags:        splitList(*tags),
		Emotions:    splitList(*emotions),
	}

	res, err := container.DecisionService.Analyze(context.Background(), req)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	printResult(res)

	md, err := container.DecisionService.Report(res.Id)
	if err == nil {
		fmt.Println()
		fmt.Println(md)
	}
}

func printResult(res *dto.AnalyzeSituationResponse) {
	header := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	header.Println("Applicable Principles")
	if len(res.Matches) == 0 {
		fmt.Println("  (none)")
	}
	for _, m := range res.Matches {
		line := fmt.Sprintf("  [%d] %s  score=%.2f  (%s)", m.PrincipleId, m.Title, m.Score, strings.Join(m.Strategies, "+"))
		if m.LowConfidence {
			warn.Println(line + "  [low confidence]")
		} else {
			fmt.Println(line)
		}
	}

	header.Println("Triggered SOPs")
	if len(res.TriggeredSops) == 0 {
		fmt.Println("  (none)")
	}
	for _, s := range res.TriggeredSops {
		fmt.Printf("  [%d] %s — %s\n", s.Id, s.Name, s.Purpose)
	}

	header.Printf("Confidence: ")
	fmt.Printf("%.2f\n", res.Confidence)

	if res.Metadata.FallbackTriggered {
		warn.Println("Note: semantic matching unavailable, scores are keyword-based")
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
